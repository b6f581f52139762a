package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDialectCapabilities(t *testing.T) {
	tests := []struct {
		dialect      Dialect
		returning    bool
		lastInsertID string
	}{
		{Postgres, true, "SELECT lastval()"},
		{SQLite, true, "SELECT last_insert_rowid()"},
		{MySQL, false, "SELECT LAST_INSERT_ID()"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.Name(), func(t *testing.T) {
			assert.Equal(t, tt.returning, tt.dialect.SupportsReturning())
			assert.Equal(t, tt.lastInsertID, tt.dialect.lastInsertIDQuery())

			stmts := newDatabase(&gorm.DB{}, tt.dialect, false).statements
			assert.Equal(t, tt.returning, stmts.returning)
		})
	}
}

func openSQLite(t *testing.T) Database {
	t.Helper()
	db, err := Open(Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "statements.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func TestInsertWithoutReturningReadsIDOnSameConnection(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	project := &models.Project{Title: "Compiler"}
	require.NoError(t, db.ProjectRepo().Add(ctx, project))

	stmts := db.statements
	stmts.returning = false

	stmt := "INSERT INTO tech_stack (project_id, technology) VALUES (@project_id, @technology)"
	first, err := stmts.Insert(ctx, stmt, Params{"project_id": project.ID, "technology": "Go"})
	require.NoError(t, err)
	second, err := stmts.Insert(ctx, stmt, Params{"project_id": project.ID, "technology": "LLVM"})
	require.NoError(t, err)
	require.NotZero(t, first)
	assert.Greater(t, second, first)

	var inTx int64
	err = db.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txStmts := statements{db: tx, dialect: SQLite, inTx: true}
		var err error
		inTx, err = txStmts.Insert(ctx, stmt, Params{"project_id": project.ID, "technology": "Postgres"})
		return err
	})
	require.NoError(t, err)
	assert.Greater(t, inTx, second)

	var technology string
	_, err = db.Query(ctx, &technology, "SELECT technology FROM tech_stack WHERE id = @id", Params{"id": inTx})
	require.NoError(t, err)
	assert.Equal(t, "Postgres", technology)

	stack, err := db.TechStackRepo().FindByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "LLVM", "Postgres"}, stack)
}
