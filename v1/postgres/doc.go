// Package postgres wraps gorm for databases that use the roovector types.
//
// The *gorm.DB runs on pgx through database/sql. Every pooled connection
// registers roovector and roohalfvec when it is opened, so models can use
// vector.Vector and vector.HalfVector fields directly:
//
//	type Item struct {
//		ID        uint
//		Embedding vector.Vector     `gorm:"type:roovector(3)"`
//		Preview   vector.HalfVector `gorm:"type:roohalfvec(3)"`
//	}
//
//	pg, err := postgres.NewPostgres(cfg.Postgres, log, bridge.WithSchema("public"))
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, &Item{}); err != nil {
//		return err
//	}
//	err = pg.Create(ctx, &Item{Embedding: vector.NewVector([]float32{1, 2, 3})})
//
// MonitorConnection and RetryConnection keep the connection alive in the
// background; FXModule starts them with the application.
//
// CRUD methods return gorm and driver errors unchanged. TranslateError maps
// them onto the sentinels of this package.
package postgres
