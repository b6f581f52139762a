package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
)

type DatabaseSettings struct {
	Driver       string
	DSN          string
	ReplicaDSNs  []string
	MaxOpenConns int
	MaxIdleConns int
}

type AdminSettings struct {
	Username string
	Password string
	Email    string
}

type AssetSettings struct {
	// Store is local or s3.
	Store           string
	UploadDir       string
	PublicBaseURL   string
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3PublicBaseURL string
	UploadTimeout   time.Duration
}

// Settings is the typed view of the environment used to wire the process.
type Settings struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	LogLevel  string
	LogFormat string

	Database DatabaseSettings

	// DemoMode accepts only the built-in demo credentials. It must be asked
	// for explicitly with DEMO_MODE=true or DB_HOST=demo.
	DemoMode  bool
	JWTSecret string
	TokenTTL  time.Duration
	Admin     AdminSettings

	AcceptedOrigins []string
	StaticDir       string
	Assets          AssetSettings
}

func Load(c map[string]string) Settings {
	demoHost := strings.EqualFold(GetString(c, "DB_HOST", ""), "demo")

	s := Settings{
		Port:         GetString(c, "PORT", "5000"),
		ReadTimeout:  GetSeconds(c, "READ_TIMEOUT_SECONDS", 180*time.Second),
		WriteTimeout: GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 180*time.Second),
		IdleTimeout:  GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 180*time.Second),

		LogLevel:  strings.ToLower(GetString(c, "LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(GetString(c, "LOG_FORMAT", "json")),

		DemoMode:  GetBool(c, "DEMO_MODE", false) || demoHost,
		JWTSecret: GetString(c, "JWT_SECRET", ""),
		TokenTTL:  time.Duration(GetInt(c, "TOKEN_TTL_HOURS", 24)) * time.Hour,
		Admin: AdminSettings{
			Username: GetString(c, "ADMIN_USERNAME", "admin"),
			Password: GetString(c, "ADMIN_PASSWORD", "admin123"),
			Email:    GetString(c, "ADMIN_EMAIL", "admin@portfolio.com"),
		},

		AcceptedOrigins: GetList(c, "ACCEPTED_ORIGINS", []string{"*"}),
		StaticDir:       GetString(c, "STATIC_DIR", ""),
		Assets: AssetSettings{
			Store:           strings.ToLower(GetString(c, "ASSET_STORE", "local")),
			UploadDir:       GetString(c, "UPLOAD_DIR", "uploads"),
			PublicBaseURL:   strings.TrimRight(GetString(c, "PUBLIC_BASE_URL", ""), "/"),
			S3Bucket:        GetString(c, "S3_BUCKET", ""),
			S3Region:        GetString(c, "S3_REGION", GetString(c, "AWS_REGION", "us-east-1")),
			S3Endpoint:      GetString(c, "S3_ENDPOINT", ""),
			S3PublicBaseURL: strings.TrimRight(GetString(c, "S3_PUBLIC_BASE_URL", ""), "/"),
			UploadTimeout:   GetSeconds(c, "UPLOAD_TIMEOUT_SECONDS", 30*time.Second),
		},
	}

	s.Database = loadDatabase(c, demoHost)
	return s
}

func loadDatabase(c map[string]string, demoHost bool) DatabaseSettings {
	db := DatabaseSettings{
		Driver:       strings.ToLower(GetString(c, "DB_DRIVER", "sqlite")),
		DSN:          GetString(c, "DB_DSN", ""),
		ReplicaDSNs:  GetList(c, "DB_REPLICA_DSNS", nil),
		MaxOpenConns: GetInt(c, "DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns: GetInt(c, "DB_MAX_IDLE_CONNS", 5),
	}

	// the demo host is a marker, not a server
	if demoHost {
		db.Driver = "sqlite"
		db.DSN = ""
	}

	if db.DSN != "" {
		return db
	}

	switch db.Driver {
	case "postgres":
		db.DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			GetString(c, "DB_HOST", "localhost"),
			GetString(c, "DB_USER", "postgres"),
			GetString(c, "DB_PASSWORD", ""),
			GetString(c, "DB_NAME", "portfolio"),
			GetString(c, "DB_PORT", "5432"),
			GetString(c, "DB_SSLMODE", "disable"),
		)
	case "mysql":
		db.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true",
			GetString(c, "DB_USER", "root"),
			GetString(c, "DB_PASSWORD", ""),
			GetString(c, "DB_HOST", "localhost"),
			GetString(c, "DB_PORT", "3306"),
			GetString(c, "DB_NAME", "portfolio"),
		)
	default:
		db.DSN = GetString(c, "DB_PATH", "data/portfolio.db")
	}
	return db
}

// Validate reports the first setting that would keep the server from starting.
func (s Settings) Validate() error {
	switch s.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return errs.NewConfigInvalidError("DB_DRIVER", fmt.Sprintf("unsupported driver %q", s.Database.Driver))
	}

	if s.JWTSecret == "" && !s.DemoMode {
		return errs.NewConfigMissingError("JWT_SECRET")
	}
	if s.TokenTTL <= 0 {
		return errs.NewConfigInvalidError("TOKEN_TTL_HOURS", "must be positive")
	}

	switch s.Assets.Store {
	case "local":
	case "s3":
		if s.Assets.S3Bucket == "" {
			return errs.NewConfigMissingError("S3_BUCKET")
		}
	default:
		return errs.NewConfigInvalidError("ASSET_STORE", fmt.Sprintf("unsupported store %q", s.Assets.Store))
	}

	if s.Assets.UploadTimeout <= 0 {
		return errs.NewConfigInvalidError("UPLOAD_TIMEOUT_SECONDS", "must be positive")
	}
	return nil
}
