package db

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

// NewTestClient opens an isolated in-memory sqlite database with the full
// schema. Intended for package tests.
func NewTestClient(t testing.TB) *Client {
	t.Helper()

	dsn := fmt.Sprintf("file:dpapi_test_%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := BootstrapSQLite(conn); err != nil {
		t.Fatalf("failed to bootstrap sqlite: %v", err)
	}
	return NewFromGorm(conn)
}
