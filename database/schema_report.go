package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ColumnDrift lists the columns of a table that no model field maps.
type ColumnDrift struct {
	Table   string
	Columns []string
}

// SchemaReport compares every managed table with its model and returns the
// tables carrying columns the application does not know about. Tables that do
// not exist yet are skipped.
func (d Database) SchemaReport(ctx context.Context) ([]ColumnDrift, error) {
	db := d.db.WithContext(ctx)
	migrator := db.Migrator()

	var drifts []ColumnDrift
	for _, model := range managedModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		if !migrator.HasTable(table) {
			continue
		}

		columnTypes, err := migrator.ColumnTypes(table)
		if err != nil {
			return nil, fmt.Errorf("read columns of %s: %w", table, err)
		}

		known := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			known[name] = true
		}

		var unknown []string
		for _, column := range columnTypes {
			if !known[column.Name()] {
				unknown = append(unknown, column.Name())
			}
		}
		if len(unknown) > 0 {
			drifts = append(drifts, ColumnDrift{Table: table, Columns: unknown})
		}
	}

	return drifts, nil
}
