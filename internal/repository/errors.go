package repository

import "errors"

// gorm/ドライバのエラーはinfra側でこの3つに寄せる。
// それ以外は分類せずそのまま返す。
var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate key")
	ErrForeignKey = errors.New("foreign key violation")
)
