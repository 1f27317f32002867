package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Find finds records that match the given conditions.
func (p *Postgres) Find(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	return p.DB().WithContext(ctx).Find(dest, conditions...).Error
}

// First finds the first record that matches the given conditions.
func (p *Postgres) First(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	return p.DB().WithContext(ctx).First(dest, conditions...).Error
}

// Create inserts value.
func (p *Postgres) Create(ctx context.Context, value interface{}) error {
	return p.DB().WithContext(ctx).Create(value).Error
}

// Save inserts or updates value.
func (p *Postgres) Save(ctx context.Context, value interface{}) error {
	return p.DB().WithContext(ctx).Save(value).Error
}

// Update updates model with attrs and returns the number of affected rows.
func (p *Postgres) Update(ctx context.Context, model interface{}, attrs interface{}) (int64, error) {
	result := p.DB().WithContext(ctx).Model(model).Updates(attrs)
	return result.RowsAffected, result.Error
}

// Delete deletes records that match the given conditions.
func (p *Postgres) Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error) {
	result := p.DB().WithContext(ctx).Delete(value, conditions...)
	return result.RowsAffected, result.Error
}

// Count counts the records of model that match the given conditions.
func (p *Postgres) Count(ctx context.Context, model interface{}, count *int64, conditions ...interface{}) error {
	db := p.DB().WithContext(ctx).Model(model)
	if len(conditions) > 0 {
		db = db.Where(conditions[0], conditions[1:]...)
	}
	return db.Count(count).Error
}

// Exec executes raw SQL and returns the number of affected rows.
func (p *Postgres) Exec(ctx context.Context, sql string, values ...interface{}) (int64, error) {
	result := p.DB().WithContext(ctx).Exec(sql, values...)
	return result.RowsAffected, result.Error
}

// Query returns a session bound to ctx for queries the methods above do not
// cover:
//
//	var items []Item
//	err := pg.Query(ctx).Where("id > ?", 10).Order("id").Limit(5).Find(&items).Error
func (p *Postgres) Query(ctx context.Context) *gorm.DB {
	return p.DB().WithContext(ctx)
}
