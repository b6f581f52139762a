package database

import "gorm.io/gorm"

// Dialect identifies the SQL backend behind a Database.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

func dialectOf(db *gorm.DB) Dialect {
	return Dialect(db.Dialector.Name())
}

func (d Dialect) Name() string {
	return string(d)
}

// SupportsReturning reports whether INSERT ... RETURNING can hand back the
// generated id. MySQL reports it through LAST_INSERT_ID() instead.
func (d Dialect) SupportsReturning() bool {
	return d == Postgres || d == SQLite
}

// lastInsertIDQuery reads the id generated by the previous INSERT on the same
// connection.
func (d Dialect) lastInsertIDQuery() string {
	switch d {
	case SQLite:
		return "SELECT last_insert_rowid()"
	case Postgres:
		return "SELECT lastval()"
	default:
		return "SELECT LAST_INSERT_ID()"
	}
}
