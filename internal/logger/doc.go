// Package logger provides a structured logging facility based on Zap.
//
// The reconciler logs progress and warnings to stderr so that stdout stays
// free for the confirmation message and the optional JSON summary.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (default for the CLI) or json
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRunID(log)
//	log.Info("Reconciliation complete")
package logger
