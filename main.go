package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rpupo63/portfolio-backend/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	ctx := context.Background()

	if prefix := config.GetString(c, "SSM_PARAMETER_PATH", ""); prefix != "" {
		added, err := loadParameterStore(ctx, prefix, c)
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %d settings from Parameter Store %s\n", added, prefix)
	}

	settings := config.Load(c)
	setupLogger(settings.LogLevel, settings.LogFormat)

	if err := settings.Validate(); err != nil {
		return err
	}
	if settings.DemoMode {
		log.Warn().Msg("demo mode is on: only the built-in demo credentials are accepted")
	}

	db, err := openDatabase(ctx, settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	}()

	store, err := newAssetStore(ctx, settings.Assets)
	if err != nil {
		return err
	}

	auth, err := services.NewAuthService(db.AdminRepo(), services.AuthConfig{
		JWTSecret: settings.JWTSecret,
		TokenTTL:  settings.TokenTTL,
		DemoMode:  settings.DemoMode,
	})
	if err != nil {
		return err
	}

	server, err := api.NewServer(settings, api.Dependencies{
		Auth:    auth,
		Content: services.NewContentService(db),
		Assets:  services.NewAssetService(store, services.AssetConfig{Timeout: settings.Assets.UploadTimeout}),
		DB:      db,
	})
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)

	// Listen for interrupt signals to gracefully shutdown the server
	g.Go(func() error {
		return listenToInterrupt(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		server.ShutdownGracefully(30 * time.Second)
		log.Info().Dur("uptime", server.Uptime().Round(time.Second)).Msg("server closed")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errInterrupted) {
		return err
	}
	return nil
}

var errInterrupted = errors.New("interrupted")

// listenToInterrupt waits for SIGINT or SIGTERM and reports it as an error so
// the group shuts down. It returns nil when ctx ends first.
func listenToInterrupt(ctx context.Context) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		log.Info().Str("signal", sig.String()).Msg("Closing server")
		return errInterrupted
	case <-ctx.Done():
		return nil
	}
}

func setupLogger(level, format string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if strings.EqualFold(format, "console") {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func loadParameterStore(ctx context.Context, prefix string, c map[string]string) (int, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return 0, fmt.Errorf("load AWS config: %w", err)
	}
	return config.LoadSSMParameters(ctx, ssm.NewFromConfig(awsCfg), prefix, c)
}

// openDatabase connects, brings the schema up to date and seeds the admin
// account and default profile when they are missing.
func openDatabase(ctx context.Context, settings config.Settings) (database.Database, error) {
	db, err := database.Open(database.Config{
		Driver:       settings.Database.Driver,
		DSN:          settings.Database.DSN,
		ReplicaDSNs:  settings.Database.ReplicaDSNs,
		MaxOpenConns: settings.Database.MaxOpenConns,
		MaxIdleConns: settings.Database.MaxIdleConns,
	})
	if err != nil {
		return database.Database{}, fmt.Errorf("connect to database: %w", err)
	}
	log.Info().Str("dialect", db.Dialect().Name()).Msg("connected to database")

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return database.Database{}, fmt.Errorf("ping database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return database.Database{}, err
	}

	drift, err := db.SchemaReport(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not build schema report")
	}
	for _, d := range drift {
		log.Warn().Str("table", d.Table).Strs("columns", d.Columns).Msg("columns not mapped by any model")
	}

	seeded, err := db.Seed(ctx, database.SeedConfig{
		AdminUsername: settings.Admin.Username,
		AdminPassword: settings.Admin.Password,
		AdminEmail:    settings.Admin.Email,
	})
	if err != nil {
		db.Close()
		return database.Database{}, err
	}
	if seeded.AdminCreated {
		log.Warn().Str("username", settings.Admin.Username).Msg("created initial admin account, change its password")
	}
	if seeded.ProfileCreated {
		log.Info().Msg("created default profile")
	}

	return db, nil
}

func newAssetStore(ctx context.Context, settings config.AssetSettings) (storage.AssetStore, error) {
	if settings.Store == "s3" {
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:        settings.S3Bucket,
			Region:        settings.S3Region,
			Endpoint:      settings.S3Endpoint,
			PublicBaseURL: settings.S3PublicBaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("create S3 asset store: %w", err)
		}
		log.Info().Str("bucket", settings.S3Bucket).Msg("storing assets in S3")
		return store, nil
	}

	store, err := storage.NewLocalStore(settings.UploadDir, settings.PublicBaseURL)
	if err != nil {
		return nil, err
	}
	log.Info().Str("dir", store.Root()).Msg("storing assets on local disk")
	return store, nil
}
