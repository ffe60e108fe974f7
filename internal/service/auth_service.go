package service

import (
	"context"
	"strings"
	"time"

	"photostudio-be/internal/config"
	"photostudio-be/internal/dto"
	"photostudio-be/internal/pkg/apperror"
	"photostudio-be/internal/pkg/logger"
	"photostudio-be/internal/repository/contract"
	"photostudio-be/internal/repository/specification"
	"photostudio-be/internal/repository/unitofwork"
	"photostudio-be/pkg/admin/mapper"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, tokenId string, remaining time.Duration) error
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	blacklist  contract.TokenBlacklist
	cfg        config.AuthConfig
	logger     logger.ILogger
	clock      func() time.Time
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, blacklist contract.TokenBlacklist, cfg config.AuthConfig, logger logger.ILogger) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		blacklist:  blacklist,
		cfg:        cfg,
		logger:     logger,
		clock:      time.Now,
	}
}

var errInvalidCredentials = apperror.AuthenticationError{Msg: "invalid credentials"}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperror.AuthenticationError{Msg: "user account is disabled"}
	}

	expiresAt := s.clock().Add(s.cfg.TokenTTL)
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    string(user.Role),
		"jti":     uuid.NewString(),
		"iat":     s.clock().Unix(),
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "User logged in", map[string]interface{}{
		"userId": user.ID.String(),
		"role":   string(user.Role),
	})

	return &dto.LoginResponse{
		AccessToken: signedToken,
		ExpiresAt:   expiresAt,
		User:        mapper.UserToDTO(user),
	}, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, tokenId string, remaining time.Duration) error {
	if tokenId == "" {
		return apperror.AuthenticationError{Msg: "token has no id"}
	}
	return s.blacklist.Revoke(ctx, tokenId, remaining)
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.ActiveUsers{})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFoundError{Resource: "User"}
	}
	res := mapper.UserToDTO(user)
	return &res, nil
}
