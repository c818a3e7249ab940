package testdb

import (
	"fmt"
	"survey-package-backend/db"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var seq int64

// New отдельная in-memory SQLite база на тест, схема совпадает с рабочей
func New(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=on", atomic.AddInt64(&seq, 1))
	gormDB, err := gorm.Open(sqlite.Open(dsn), db.NewConfig())
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	// одно соединение: sqlite в shared cache блокирует таблицы между соединениями
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}
