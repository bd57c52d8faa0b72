package database

import (
	"context"

	"gorm.io/gorm"
)

type TransactionContextKey struct{}

// WithTx returns a context carrying tx.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, TransactionContextKey{}, tx)
}

// Database hands repositories the transaction bound to a context, or the root handle.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

// GetTx returns the transaction stored on ctx, or the root handle, scoped to ctx.
func (d *Database) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TransactionContextKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return d.db.WithContext(ctx)
}

// InTx runs fn in a transaction; repositories reached through the ctx passed to fn join it.
func (d *Database) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return d.GetTx(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}

// Ping checks connectivity for readiness probes.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Dialect returns the dialector name of the root handle.
func (d *Database) Dialect() string {
	return d.db.Dialector.Name()
}
