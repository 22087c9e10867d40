package store

import (
	"github.com/jmoiron/sqlx"
)

// DBTX abstracts the database access layer. Both *sqlx.DB and *sqlx.Tx
// satisfy it, allowing store implementations to run against either a pooled
// connection or a transaction owned by the caller.
type DBTX interface {
	sqlx.ExtContext
}
