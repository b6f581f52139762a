package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type Config struct {
	// Driver is one of postgres, mysql or sqlite. Empty means sqlite.
	Driver       string
	DSN          string
	ReplicaDSNs  []string
	MaxOpenConns int
	MaxIdleConns int

	SlowThreshold time.Duration
	// NowFunc overrides the clock used for created_at and updated_at.
	NowFunc func() time.Time
}

// Open connects to the configured backend and returns a ready Database. It does
// not migrate or seed.
func Open(cfg Config) (Database, error) {
	dialect := Dialect(strings.ToLower(strings.TrimSpace(cfg.Driver)))
	if dialect == "" {
		dialect = SQLite
	}

	dialector, err := dialectorFor(dialect, cfg.DSN)
	if err != nil {
		return Database{}, err
	}

	slowThreshold := cfg.SlowThreshold
	if slowThreshold == 0 {
		slowThreshold = 10 * time.Second
	}

	gormLog := log.With().Str("component", "gorm").Logger()
	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: false,
		NowFunc:     cfg.NowFunc,
		Logger: logger.New(&gormLog, logger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return Database{}, fmt.Errorf("open %s database: %w", dialect, err)
	}

	if len(cfg.ReplicaDSNs) > 0 && dialect != SQLite {
		replicas := make([]gorm.Dialector, 0, len(cfg.ReplicaDSNs))
		for _, dsn := range cfg.ReplicaDSNs {
			replica, err := dialectorFor(dialect, dsn)
			if err != nil {
				return Database{}, err
			}
			replicas = append(replicas, replica)
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return Database{}, fmt.Errorf("register read replicas: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return Database{}, err
	}
	if dialect == SQLite {
		// one writer at a time; transactions then never wait on themselves
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}

	return New(db), nil
}

func dialectorFor(dialect Dialect, dsn string) (gorm.Dialector, error) {
	switch dialect {
	case Postgres:
		return postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), nil
	case MySQL:
		return mysql.Open(mysqlDSN(dsn)), nil
	case SQLite:
		dsn, err := sqliteDSN(dsn)
		if err != nil {
			return nil, err
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dialect)
	}
}

// mysqlDSN makes DATETIME columns scan into time.Time.
func mysqlDSN(dsn string) string {
	if strings.Contains(dsn, "parseTime=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&parseTime=true"
	}
	return dsn + "?parseTime=true"
}

// sqliteDSN creates the parent directory of a file database and turns on
// foreign keys so tech_stack rows follow their project.
func sqliteDSN(dsn string) (string, error) {
	if dsn == "" {
		dsn = filepath.Join("data", "portfolio.db")
	}

	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path != ":memory:" && path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	if strings.Contains(dsn, "_pragma=") {
		return dsn, nil
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", nil
}
