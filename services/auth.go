package services

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoUsername = "admin"
	demoPassword = "admin123"
	demoSecret   = "demo-secret"
)

// Identity is the admin a token was issued to.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type LoginResult struct {
	Token string
	Admin Identity
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	// DemoMode accepts only the demo credentials and never reads the admin table.
	DemoMode bool
}

type AuthService struct {
	admins   *database.AdminRepo
	tokens   *TokenManager
	demoMode bool
	logger   zerolog.Logger

	dummyHashOnce sync.Once
	dummyHash     []byte
}

func NewAuthService(admins *database.AdminRepo, cfg AuthConfig) (*AuthService, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		if !cfg.DemoMode {
			return nil, errs.NewConfigMissingError("JWT_SECRET")
		}
		secret = demoSecret
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &AuthService{
		admins:   admins,
		tokens:   NewTokenManager(secret, ttl),
		demoMode: cfg.DemoMode,
		logger:   log.With().Str("service", "auth").Logger(),
	}, nil
}

// Login checks the credentials and issues a bearer token. An unknown username
// and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if username == "" || password == "" {
		return LoginResult{}, errs.NewBadRequestError("Username and password are required")
	}

	identity, err := s.authenticate(ctx, username, password)
	if err != nil {
		if errs.IsInvalidCredentialsError(err) {
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			s.logger.Warn().Str("username", username).Msg("login rejected")
		} else {
			metrics.LoginAttempts.WithLabelValues("error").Inc()
		}
		return LoginResult{}, err
	}

	token, err := s.tokens.Issue(identity)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return LoginResult{}, errs.NewInternalErrorWithCause("Server error during login", err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return LoginResult{Token: token, Admin: identity}, nil
}

func (s *AuthService) authenticate(ctx context.Context, username, password string) (Identity, error) {
	if s.demoMode {
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(demoUsername)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(demoPassword)) == 1
		if !userOK || !passOK {
			return Identity{}, errs.NewInvalidCredentialsError()
		}
		return Identity{ID: 1, Username: demoUsername, Email: "demo@example.com"}, nil
	}

	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		return Identity{}, errs.NewDatabaseError("find", "admin", err)
	}
	if admin == nil {
		// spend the same bcrypt time as a real comparison
		_ = bcrypt.CompareHashAndPassword(s.getDummyHash(), []byte(password))
		return Identity{}, errs.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return Identity{}, errs.NewInvalidCredentialsError()
	}

	return Identity{ID: admin.ID, Username: admin.Username, Email: admin.Email}, nil
}

// Verify returns the identity carried by a valid token. Every failure is
// reported as the same invalid token error.
func (s *AuthService) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, errs.NewMissingTokenError()
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return Identity{}, errs.NewInvalidTokenError(err)
	}
	return Identity{ID: claims.ID, Username: claims.Username}, nil
}

func (s *AuthService) getDummyHash() []byte {
	s.dummyHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to build dummy password hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
