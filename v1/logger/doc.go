// Package logger provides the structured zap logger shared by the roovector
// packages.
//
// *Logger satisfies the Logger interfaces of v1/bridge, v1/pgxvector and
// v1/pqvector, so the same instance can be handed to every registration call:
//
//	log, err := logger.NewLoggerClient(logger.Config{Level: logger.Debug, ServiceName: "search-api"})
//	if err != nil {
//		return err
//	}
//	outcome, err := pgxvector.RegisterTypes(ctx, conn, bridge.WithLogger(log))
//
// Configuration:
//
//	logger:
//	  level: debug          # debug, info, warning, error
//	  service_name: search-api
//	  enable_tracing: true  # adds trace_id/span_id in *WithContext methods
//
// All methods are safe for concurrent use.
package logger
