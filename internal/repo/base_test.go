package repo

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type ctxKey struct{}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:repo_base?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return conn
}

func TestBaseDB_BindsContext(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	ctx := context.WithValue(context.Background(), ctxKey{}, "value")
	withCtx := base.DB(ctx)
	if withCtx.Statement == nil || withCtx.Statement.Context != ctx {
		t.Fatalf("expected context to flow through")
	}

	//nolint:staticcheck
	if base.DB(nil) != db {
		t.Fatalf("expected nil context to return raw connection")
	}
	if base.Raw() != db {
		t.Fatalf("expected Raw to return raw connection")
	}
}

func TestBaseConn_PrefersTransaction(t *testing.T) {
	db := newTestDB(t)
	base := NewBase(db)

	tx := db.Begin()
	defer tx.Rollback()

	if base.Conn(context.Background(), tx) != tx {
		t.Fatalf("expected open transaction to be returned")
	}
	if base.Conn(context.Background(), nil) == tx {
		t.Fatalf("expected pooled connection without a transaction")
	}
}
