package vector

import (
	"database/sql/driver"
)

// Scan implements sql.Scanner. Drivers deliver the text representation.
func (v *Vector) Scan(src any) error {
	switch src := src.(type) {
	case string:
		return v.Parse(src)
	case []byte:
		return v.UnmarshalText(src)
	default:
		return &ErrUnsupportedSource{Target: "vector.Vector", Source: src}
	}
}

// Value implements driver.Valuer.
func (v Vector) Value() (driver.Value, error) {
	return v.String(), nil
}

// GormDataType names the column type for gorm migrations.
func (Vector) GormDataType() string {
	return "roovector"
}

// Scan implements sql.Scanner. Drivers deliver the text representation.
func (v *HalfVector) Scan(src any) error {
	switch src := src.(type) {
	case string:
		return v.Parse(src)
	case []byte:
		return v.UnmarshalText(src)
	default:
		return &ErrUnsupportedSource{Target: "vector.HalfVector", Source: src}
	}
}

// Value implements driver.Valuer.
func (v HalfVector) Value() (driver.Value, error) {
	return v.String(), nil
}

// GormDataType names the column type for gorm migrations.
func (HalfVector) GormDataType() string {
	return "roohalfvec"
}
