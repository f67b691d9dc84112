package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"notesnest-web/internal/domain"
)

type AuthRepository interface {
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
}

type authRepository struct {
	api *apiClient
}

func NewAuthRepository(baseURL string, client *http.Client) AuthRepository {
	return &authRepository{api: newAPIClient(baseURL, client)}
}

func (r *authRepository) Login(ctx context.Context, login *domain.LoginRequest) (*domain.LoginResponse, error) {
	data, err := json.Marshal(login)
	if err != nil {
		return nil, fmt.Errorf("failed to encode login: %w", err)
	}

	req, err := r.api.newRequest(ctx, http.MethodPost, "/api/admin/login", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp domain.LoginResponse
	if err := r.api.do(req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &APIError{StatusCode: http.StatusBadGateway, Message: "login response carried no token"}
	}
	return &resp, nil
}
