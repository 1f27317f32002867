package postgres

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/Aleph-Alpha/roovector-go/v1/config"
	"github.com/Aleph-Alpha/roovector-go/v1/pgxvector"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	monitorInterval    = 10 * time.Second
	healthCheckTimeout = 5 * time.Second
	retryDelay         = time.Second
)

// Postgres is a wrapper around gorm.DB that provides connection monitoring,
// automatic reconnection and vector type registration.
//
// The active *gorm.DB is stored in an atomic pointer and can be swapped during
// reconnection without blocking readers.
type Postgres struct {
	cfg      config.Postgres
	log      bridge.Logger
	register []bridge.Option

	client          atomic.Pointer[gorm.DB]
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	// The onces are shared with transaction clones, which use the same channels.
	closeRetryChanOnce *sync.Once
	closeShutdownOnce  *sync.Once

	// inTx marks a client handed to a Transaction callback.
	inTx bool
}

// NewPostgres opens a pgx-backed database/sql pool, wraps it in gorm and
// verifies it with a ping. Every physical connection the pool opens runs
// pgxvector.AfterConnect first, so models with vector.Vector and
// vector.HalfVector fields work on any connection gorm picks.
//
// Parameters:
//   - cfg: connection and pool settings; BinaryParameters is ignored because
//     pgx chooses formats itself
//   - log: may be nil, in which case nothing is logged
//   - opts: registration options such as bridge.WithSchema. The log is passed
//     to registration unless opts set another logger
//
// The initial connection must succeed. A database without roovector fails
// here with an error that TranslateError maps to ErrVectorTypeMissing.
// Reconnection is only attempted by RetryConnection after startup.
//
// Example:
//
//	pg, err := postgres.NewPostgres(cfg.Postgres, log, bridge.WithSchema("vectors"))
//	if err != nil {
//	    return err
//	}
//	defer pg.GracefulShutdown()
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	go pg.MonitorConnection(ctx)
//	go pg.RetryConnection(ctx)
func NewPostgres(cfg config.Postgres, log bridge.Logger, opts ...bridge.Option) (*Postgres, error) {
	if log == nil {
		log = nopLogger{}
	}

	pg := &Postgres{
		cfg:             cfg,
		log:             log,
		register:        append([]bridge.Option{bridge.WithLogger(log)}, opts...),
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),

		closeRetryChanOnce: &sync.Once{},
		closeShutdownOnce:  &sync.Once{},
	}

	conn, err := pg.connect()
	if err != nil {
		return nil, fmt.Errorf("error in connecting to postgres: %w", err)
	}
	pg.client.Store(conn)
	return pg, nil
}

// DB returns the current gorm handle. The handle may be replaced by
// RetryConnection at any time, so callers should not hold on to it across
// long-running work.
func (p *Postgres) DB() *gorm.DB {
	return p.client.Load()
}

// connect opens a database/sql pool on pgx whose connections register the
// vector types, wraps it in gorm and verifies it with a ping. A database
// without roovector fails here.
func (p *Postgres) connect() (*gorm.DB, error) {
	conn := p.cfg.Connection
	conn.BinaryParameters = false

	connConfig, err := pgx.ParseConfig(conn.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing postgres connection config: %w", err)
	}

	sqlDB := stdlib.OpenDB(*connConfig, stdlib.OptionAfterConnect(pgxvector.AfterConnect(p.register...)))

	pool := p.cfg.Pool.WithDefaults()
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	database, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{
			TranslateError: true,
		})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	p.log.Info("Successfully connected to PostgreSQL database", nil, map[string]interface{}{
		"host":     p.cfg.Connection.Host,
		"database": p.cfg.Connection.DbName,
	})
	return database, nil
}

// RetryConnection reconnects whenever MonitorConnection reports a failed
// health check. It returns on shutdown or when ctx is done.
//
// The outer loop waits for retry signals. The inner loop calls connect until
// it succeeds, sleeping one second between attempts, then swaps the new handle
// in and closes the old pool. The new pool registers the vector types again,
// so a database restored without the extension keeps the loop retrying.
func (p *Postgres) RetryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-p.shutdownSignal:
			p.log.Info("Stopping RetryConnection loop due to shutdown signal", nil, nil)
			return
		case <-ctx.Done():
			return
		case err, ok := <-p.retryChanSignal:
			if !ok {
				return
			}
			p.log.Warn("PostgreSQL health check failed, reconnecting", err, nil)
		innerLoop:
			for {
				select {
				case <-p.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := p.connect()
					if err != nil {
						p.log.Error("PostgreSQL reconnection failed", err, nil)
						time.Sleep(retryDelay)
						continue innerLoop
					}

					old := p.client.Swap(newConn)
					p.closeGorm(old)
					p.log.Info("Successfully reconnected to PostgreSQL database", nil, nil)
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection pings the database every ten seconds and signals
// RetryConnection when a ping fails. The signal channel holds one pending
// failure; further failures are dropped until RetryConnection picks it up.
// It closes the signal channel when it returns, which also stops
// RetryConnection.
func (p *Postgres) MonitorConnection(ctx context.Context) {
	defer p.closeRetryChanOnce.Do(func() {
		close(p.retryChanSignal)
	})

	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.shutdownSignal:
			p.log.Info("Stopping MonitorConnection loop due to shutdown signal", nil, nil)
			return
		case <-ticker.C:
			if err := p.healthCheck(ctx); err != nil {
				select {
				case p.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// healthCheck pings a snapshot of the current connection.
func (p *Postgres) healthCheck(ctx context.Context) error {
	dbConn := p.DB()
	if dbConn == nil {
		return fmt.Errorf("database client is not initialized")
	}

	db, err := dbConn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during health check: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}
	return nil
}

// GracefulShutdown stops the background loops and closes the pool. It is safe
// to call more than once. A client passed to a Transaction callback shares the
// pool of its parent and returns ErrShutdownInTransaction instead.
func (p *Postgres) GracefulShutdown() error {
	if p.inTx {
		return ErrShutdownInTransaction
	}
	p.closeShutdownOnce.Do(func() {
		close(p.shutdownSignal)
	})
	return p.closeGorm(p.DB())
}

func (p *Postgres) closeGorm(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
