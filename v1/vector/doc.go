// Package vector provides the client-side values for the roovector and roohalfvec
// PostgreSQL column types.
//
// Vector holds float32 elements and maps to roovector. HalfVector maps to roohalfvec:
// it keeps float32 elements in memory and rounds them to IEEE-754 binary16 when it is
// encoded for the database.
//
// Both types speak the two PostgreSQL wire formats:
//
//   - Text: "[1,2.5,-3]"
//   - Binary: uint16 dimensions, uint16 reserved (always zero), then one big-endian
//     element per dimension (4 bytes for Vector, 2 bytes for HalfVector)
//
// The text and binary forms are exposed through encoding.TextMarshaler /
// encoding.TextUnmarshaler and encoding.BinaryMarshaler / encoding.BinaryUnmarshaler,
// which is what the registration bridge in v1/bridge binds to database type OIDs.
//
// Both types also implement sql.Scanner and driver.Valuer using the text format, and
// report their column type to gorm through GormDataType:
//
//	type Item struct {
//		ID        int64
//		Embedding vector.Vector `gorm:"type:roovector(3)"`
//	}
//
//	db.Create(&Item{Embedding: vector.NewVector([]float32{1, 2, 3})})
package vector
