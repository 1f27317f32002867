// Package bridge binds the roovector value codecs to database type OIDs inside a
// client library's type registry.
//
// The package holds everything that is independent of the client library:
//
//   - Resolve looks up the OID of roovector / roohalfvec in a schema. A missing
//     roovector is a *TypeNotFoundError; a missing roohalfvec is reported as an
//     absent descriptor (OID 0) without error. Any other lookup failure is an
//     *UnexpectedLookupError and is never treated as absence.
//   - BuildAdapters pairs a ValueCodec with the text and binary wire formats for a
//     resolved descriptor.
//   - Register runs the registration sequence against a Host, which supplies the
//     catalog lookup and the library-specific installation mechanics.
//
// Host implementations live next to the client libraries: v1/pgxvector installs
// pgtype.Codec values into a pgx type map, v1/pqvector installs encoder/decoder
// callbacks into a database/sql codec table.
//
// Registration sequence:
//
//	resolve roovector    -> failure aborts, nothing installed
//	install text+binary  -> roovector
//	resolve roohalfvec   -> absent: done; unexpected error: abort
//	install text+binary  -> roohalfvec
//
// Both pairs are installed as a unit; an Outcome never contains one format of a
// type without the other.
//
// Blocking and non-blocking callers share the same code path: RegisterAsync and
// ResolveAsync only schedule Register and Resolve on a goroutine and deliver the
// result on a buffered channel.
package bridge
