package usecase

import (
	"errors"

	"shopapi/internal/repository"
)

// mapRepoErrorはrepositoryの番兵エラーをAppErrorにする。
// 分類できないものはInternal。
func mapRepoError(err error, subject string, fkMessage string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return NotFound(subject + " not found")
	case errors.Is(err, repository.ErrDuplicate):
		return Conflict(subject + " already exists")
	case errors.Is(err, repository.ErrForeignKey):
		return Validation(fkMessage)
	}
	return Internal(err)
}
