package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Client is the database surface of *Postgres. Depend on it rather than on
// the concrete type to substitute the database in tests.
type Client interface {
	Find(ctx context.Context, dest interface{}, conditions ...interface{}) error
	First(ctx context.Context, dest interface{}, conditions ...interface{}) error
	Create(ctx context.Context, value interface{}) error
	Save(ctx context.Context, value interface{}) error
	Update(ctx context.Context, model interface{}, attrs interface{}) (int64, error)
	Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error)
	Count(ctx context.Context, model interface{}, count *int64, conditions ...interface{}) error
	Exec(ctx context.Context, sql string, values ...interface{}) (int64, error)
	Query(ctx context.Context) *gorm.DB
	Migrate(ctx context.Context, models ...interface{}) error

	// Transaction passes a transaction-scoped *Postgres to fn.
	Transaction(ctx context.Context, fn func(tx *Postgres) error) error

	DB() *gorm.DB
	TranslateError(err error) error
	GracefulShutdown() error
}

var _ Client = (*Postgres)(nil)
