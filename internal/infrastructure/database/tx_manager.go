package database

import (
	"context"

	"gorm.io/gorm"
)

// TxManager hands usecases a request-scoped handle and runs units of work in a
// transaction. Repositories receive whichever *gorm.DB the usecase passes them.
type TxManager interface {
	Conn(ctx context.Context) *gorm.DB
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Conn(ctx context.Context) *gorm.DB {
	return m.db.WithContext(ctx)
}

func (m *gormTxManager) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
