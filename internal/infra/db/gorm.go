package db

import (
	"fmt"
	"log/slog"
	"time"

	"shopapi/internal/config"
	"shopapi/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config, log *slog.Logger) (*gorm.DB, error) {
	return Open(postgres.Open(cfg.DSN()), log)
}

// Openは任意のdialectorで開く（テストではsqlmockを渡す）
func Open(dialector gorm.Dialector, log *slog.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		// 23505/23503 を gorm.ErrDuplicatedKey / ErrForeignKeyViolated に変換させる
		TranslateError: true,
		Logger:         NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gdb, nil
}

// Migrateはテーブルを作成・更新する
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.Customer{},
		&model.RefreshToken{},
		&model.AuditLog{},
		&model.Category{},
		&model.Brand{},
		&model.Product{},
		&model.Review{},
	)
}

// NewGormLoggerはgormのログ（遅いクエリ・エラー）をslogへ流す
func NewGormLogger(log *slog.Logger) gormlogger.Interface {
	return gormlogger.New(slogWriter{log: log}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(fmt.Sprintf(format, args...), "component", "gorm")
}
