package repo

import (
	"CookieVault/internal/model"
	"errors"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// ErrDuplicate возвращается репозиториями при нарушении уникального индекса
// (гонка между предварительной проверкой и записью).
var ErrDuplicate = errors.New("duplicate key")

// InitDB открывает подключение к БД и прогоняет миграции.
// Диалект выбирается по DSN: postgres-строка — Postgres, иначе файл SQLite
// (драйвер modernc, без cgo). Пустой DSN — локальный файл cookievault.db.
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		dial = postgres.Open(dsn)
	case dsn == "":
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: "cookievault.db"}
	default:
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.Account{}, &model.Entry{}); err != nil {
		return nil, err
	}
	return db, nil
}

// isDuplicate распознаёт нарушение уникального индекса у обоих диалектов.
// TranslateError покрывает postgres; для modernc-sqlite остаётся текстовая проверка.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
