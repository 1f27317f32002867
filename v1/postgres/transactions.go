package postgres

import (
	"context"

	"gorm.io/gorm"
)

// cloneWithTx returns a Postgres whose operations run inside tx. It shares
// the configuration, channels and their close guards with p, and cannot shut
// the pool down.
func (p *Postgres) cloneWithTx(tx *gorm.DB) *Postgres {
	clone := &Postgres{
		cfg:             p.cfg,
		log:             p.log,
		register:        p.register,
		shutdownSignal:  p.shutdownSignal,
		retryChanSignal: p.retryChanSignal,

		closeRetryChanOnce: p.closeRetryChanOnce,
		closeShutdownOnce:  p.closeShutdownOnce,
		inTx:               true,
	}
	clone.client.Store(tx)
	return clone
}

// Transaction runs fn inside a transaction. The transaction is rolled back
// when fn returns an error or panics and committed otherwise.
//
//	err := pg.Transaction(ctx, func(tx *postgres.Postgres) error {
//		if err := tx.Create(ctx, &item); err != nil {
//			return err
//		}
//		_, err := tx.Exec(ctx, "UPDATE stats SET items = items + 1")
//		return err
//	})
func (p *Postgres) Transaction(ctx context.Context, fn func(tx *Postgres) error) error {
	return p.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(p.cloneWithTx(tx))
	})
}
