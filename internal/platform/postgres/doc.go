// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in the store package. All implementations use the
// database/sql API over the pgx driver and map constraint violations to the
// store package's typed errors.
package postgres
