package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"huevopos/internal/config"
	"huevopos/internal/dto"
)

// AuthService authenticates the single operator by PIN and issues the JWT
// the API requires on every protected route. There is no user table — the
// bcrypt hash of the PIN lives in configuration (see cmd/genhash).
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.OperatorPINHash), []byte(req.PIN)); err != nil {
		return nil, errors.New("PIN invalido")
	}

	expira := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	claims := jwt.RegisteredClaims{
		Subject:   "operador",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expira)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	firmado, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: firmado,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
	}, nil
}
