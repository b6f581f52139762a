package database

import (
	"context"

	"gorm.io/gorm"
)

// Params binds named parameters. A statement refers to them as @name and the
// dialect decides the placeholder syntax sent to the server.
type Params = map[string]any

// Result is the metadata returned by a statement.
type Result struct {
	RowsAffected int64
}

type statements struct {
	db        *gorm.DB
	dialect   Dialect
	inTx      bool
	returning bool
}

// Query runs a SELECT and scans the rows into dest.
func (s statements) Query(ctx context.Context, dest any, statement string, params Params) (Result, error) {
	tx := s.db.WithContext(ctx).Raw(statement, bind(params)...).Scan(dest)
	return Result{RowsAffected: tx.RowsAffected}, tx.Error
}

// Exec runs an UPDATE, DELETE or DDL statement.
func (s statements) Exec(ctx context.Context, statement string, params Params) (Result, error) {
	tx := s.db.WithContext(ctx).Exec(statement, bind(params)...)
	return Result{RowsAffected: tx.RowsAffected}, tx.Error
}

// Insert runs an INSERT into a table with an auto-increment id column and
// returns the id of the new row, whatever the dialect.
func (s statements) Insert(ctx context.Context, statement string, params Params) (int64, error) {
	var id int64
	if s.returning {
		err := s.db.WithContext(ctx).Raw(statement+" RETURNING id", bind(params)...).Scan(&id).Error
		return id, err
	}

	insert := func(conn *gorm.DB) error {
		if err := conn.Exec(statement, bind(params)...).Error; err != nil {
			return err
		}
		return conn.Raw(s.dialect.lastInsertIDQuery()).Scan(&id).Error
	}

	// The last insert id is per connection, so both statements must share one.
	if s.inTx {
		return id, insert(s.db.WithContext(ctx))
	}
	return id, s.db.WithContext(ctx).Connection(insert)
}

func bind(params Params) []any {
	if len(params) == 0 {
		return nil
	}
	return []any{params}
}
