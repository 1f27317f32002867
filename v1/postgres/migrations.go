package postgres

import "context"

// Migrate creates or alters the tables of models. Vector fields map to
// roovector and roohalfvec columns through their GormDataType.
func (p *Postgres) Migrate(ctx context.Context, models ...interface{}) error {
	return p.DB().WithContext(ctx).AutoMigrate(models...)
}
