// Package metrics exposes Prometheus metrics for vector type registration.
//
// *Metrics implements bridge.Observer. Pass it to any registration entry point
// with bridge.WithObserver and every call is recorded:
//
//	roovector_registrations_total{library,result}
//	roovector_registration_duration_seconds{library}
//	roovector_adapters_installed{library,kind,format}
//
// result is one of success, type_not_found, lookup_error, install_error, error.
// roovector_adapters_installed is 1 for every kind/format pair the last call
// left installed and 0 otherwise, so a database without roohalfvec shows up as
// zeros on the roohalfvec series.
//
// Metrics live in a dedicated registry served at /metrics by Server. The
// FXModule starts and stops the server with the application.
package metrics
