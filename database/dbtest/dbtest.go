// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
)

// Clock hands out strictly increasing timestamps, one second apart, so rows
// created back to back have distinct created_at values.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// New returns a migrated, unseeded database backed by a file in t.TempDir().
func New(t testing.TB) database.Database {
	t.Helper()

	db, err := database.Open(database.Config{
		Driver:  "sqlite",
		DSN:     filepath.Join(t.TempDir(), "portfolio.db"),
		NowFunc: NewClock().Now,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
