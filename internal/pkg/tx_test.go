package pkg

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type txOrder struct {
	ID        uint `gorm:"primaryKey"`
	SessionID string
}

type txOrderItem struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint
	Title   string
}

func newTxDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&txOrder{}, &txOrderItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func writeOrder(tx *gorm.DB, session string) error {
	order := txOrder{SessionID: session}
	if err := tx.Create(&order).Error; err != nil {
		return err
	}
	return tx.Create(&txOrderItem{OrderID: order.ID, Title: "Herndon"}).Error
}

func countRows(t *testing.T, db *gorm.DB) (orders, items int64) {
	t.Helper()
	db.Model(&txOrder{}).Count(&orders)
	db.Model(&txOrderItem{}).Count(&items)
	return orders, items
}

func TestWithTx(t *testing.T) {
	errFn := errors.New("items rejected")

	tests := []struct {
		name       string
		fn         func(tx *gorm.DB) error
		wantErr    error
		wantOrders int64
		wantItems  int64
	}{
		{
			name:       "commits every write",
			fn:         func(tx *gorm.DB) error { return writeOrder(tx, "cs_1") },
			wantOrders: 1,
			wantItems:  1,
		},
		{
			name: "rolls back on error",
			fn: func(tx *gorm.DB) error {
				if err := writeOrder(tx, "cs_2"); err != nil {
					return err
				}
				return errFn
			},
			wantErr: errFn,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTxDB(t)
			err := WithTx(context.Background(), db, tt.fn)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("WithTx error = %v; want %v", err, tt.wantErr)
			}
			orders, items := countRows(t, db)
			if orders != tt.wantOrders || items != tt.wantItems {
				t.Errorf("rows = %d orders, %d items; want %d, %d", orders, items, tt.wantOrders, tt.wantItems)
			}
		})
	}
}

func TestWithTx_RollsBackAndRepanics(t *testing.T) {
	db := newTxDB(t)

	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Fatalf("recovered %v; want boom", r)
			}
		}()
		_ = WithTx(context.Background(), db, func(tx *gorm.DB) error {
			if err := writeOrder(tx, "cs_3"); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	if orders, items := countRows(t, db); orders != 0 || items != 0 {
		t.Errorf("rows after panic = %d orders, %d items; want none", orders, items)
	}
}

func TestWithTx_BeginFails(t *testing.T) {
	db := newTxDB(t)
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	called := false
	err := WithTx(context.Background(), db, func(*gorm.DB) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("WithTx on a closed database succeeded")
	}
	if called {
		t.Error("fn ran without a transaction")
	}
}

func TestWithTx_CanceledContext(t *testing.T) {
	db := newTxDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithTx(ctx, db, func(tx *gorm.DB) error { return writeOrder(tx, "cs_4") })
	if err == nil {
		t.Fatal("WithTx with a canceled context succeeded")
	}
	if orders, _ := countRows(t, db); orders != 0 {
		t.Errorf("orders = %d; want 0", orders)
	}
}
