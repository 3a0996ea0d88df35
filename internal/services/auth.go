package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/cook/internal/shared"
)

const (
	LoginEndpoint    = "auth/login"
	RegisterEndpoint = "auth/register"
)

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of the register endpoint.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	Age      int    `json:"age"`
}

// AuthResponse is the success body of both auth endpoints. Fields besides Token are optional.
type AuthResponse struct {
	Token   string         `json:"token"`
	Message string         `json:"message,omitempty"`
	User    map[string]any `json:"user,omitempty"`
}

// AuthService calls the backend's credential endpoints.
type AuthService struct {
	gateway *Gateway
}

// NewAuthService creates an [AuthService] on gateway.
func NewAuthService(gateway *Gateway) *AuthService {
	return &AuthService{gateway: gateway}
}

// Login exchanges credentials for a token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	return s.exchange(ctx, LoginEndpoint, req)
}

// Register creates an account and returns its token.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return s.exchange(ctx, RegisterEndpoint, req)
}

func (s *AuthService) exchange(ctx context.Context, path string, body any) (*AuthResponse, error) {
	var resp AuthResponse
	if _, err := s.gateway.Post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Token) == "" {
		return nil, fmt.Errorf("%w: %s response did not include a token", shared.ErrAuthFailed, path)
	}
	return &resp, nil
}
