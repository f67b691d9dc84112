package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"notesnest-web/internal/domain"
	"notesnest-web/internal/repository"
	"notesnest-web/pkg/hash"
	"notesnest-web/pkg/jwt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	AuthModeToken  = "token"
	AuthModeSecret = "secret"
)

type AuthService struct {
	repo       repository.AuthRepository
	mode       string
	secretHash string
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewAuthService(repo repository.AuthRepository, mode, secretHash string, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:       repo,
		mode:       mode,
		secretHash: secretHash,
		validate:   validator.New(),
		logger:     logger,
	}
}

func (s *AuthService) Mode() string { return s.mode }

// Login turns the password typed on the login form into a credential for
// the notes API. Failures are *LoginError with the message to display.
func (s *AuthService) Login(ctx context.Context, password string) (*domain.Credential, error) {
	req := &domain.LoginRequest{Password: password}
	if err := s.validate.Struct(req); err != nil {
		return nil, &LoginError{Message: "Please enter the admin password.", Err: err}
	}

	if s.mode == AuthModeSecret {
		return s.loginWithSecret(password)
	}
	return s.loginWithToken(ctx, req)
}

func (s *AuthService) loginWithSecret(secret string) (*domain.Credential, error) {
	if err := hash.Compare(s.secretHash, secret); err != nil {
		s.logger.Warn("admin secret rejected")
		return nil, &LoginError{Message: "Invalid password", Err: err}
	}

	return &domain.Credential{Kind: domain.CredentialSecret, Value: secret}, nil
}

func (s *AuthService) loginWithToken(ctx context.Context, req *domain.LoginRequest) (*domain.Credential, error) {
	resp, err := s.repo.Login(ctx, req)
	if err != nil {
		var apiErr *repository.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			msg := apiErr.Message
			if msg == "" {
				msg = "Invalid password"
			}
			s.logger.Warn("admin login rejected", zap.Int("status", apiErr.StatusCode))
			return nil, &LoginError{Message: msg, Err: err}
		}
		s.logger.Error("admin login failed", zap.Error(err))
		return nil, &LoginError{Message: "Server error", Err: fmt.Errorf("login: %w", err), Unavailable: true}
	}

	if claims, err := jwt.Inspect(resp.Token); err == nil {
		s.logger.Info("admin signed in", zap.String("role", claims.Role), zap.String("subject", claims.Subject))
	} else {
		s.logger.Info("admin signed in", zap.String("token", "opaque"))
	}

	return &domain.Credential{Kind: domain.CredentialToken, Value: resp.Token}, nil
}
