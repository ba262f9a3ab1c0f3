// Package config provides configuration management for the reconciler.
//
// It utilizes Viper for loading configuration from defaults, environment
// variables (optionally seeded from a .env file) and command-line flags,
// in increasing order of precedence.
//
// # Configuration Structure
//
//   - Bank / Practice: reference and amount column names of each ledger
//   - Tolerance: largest absolute difference still reported as matched
//   - Log: logging level and format
//
// Environment variables use the RECONCILER_ prefix with dots replaced by
// underscores, e.g. RECONCILER_BANK_REFERENCE or RECONCILER_LOG_LEVEL.
package config
