// Package config provides the environment configuration of the library API server
// and the factories that turn it into database connections and OpenTelemetry providers.
//
// This package contains factory functions for creating database connections
// using different PostgreSQL drivers (pgx.Pool, sql.DB, sqlx.DB).
//
// This package is part of the shell (infrastructure) layer.
package config
