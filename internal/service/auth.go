package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"agendo/config"
	"agendo/internal/domain"
	"agendo/internal/repository"
	"agendo/pkg/auth"
	"agendo/pkg/validator"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
}

type AuthServiceImpl struct {
	authRepo    repository.AuthRepository
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtConfig   config.JWTConfig
	logger      *zap.Logger
}

func NewAuthService(
	authRepo repository.AuthRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	jwtConfig config.JWTConfig,
	logger *zap.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		authRepo:    authRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		jwtConfig:   jwtConfig,
		logger:      logger,
	}
}

// Register cria a empresa e o primeiro usuário administrador dela.
func (s *AuthServiceImpl) Register(ctx context.Context, dto domain.RegisterRequest) (string, error) {
	existingUser, err := s.userRepo.GetByEmail(ctx, dto.Email)
	if err == nil && existingUser != nil {
		return "", errors.New("já existe um usuário com este e-mail")
	}

	if !validator.ValidatePhone(dto.Phone) {
		return "", errors.New("telefone inválido")
	}

	passwordHash, err := auth.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("erro ao gerar hash de senha", zap.Error(err))
		return "", errors.New("erro ao registrar usuário")
	}

	companyID, err := s.companyRepo.Create(ctx, dto.CompanyName, validator.FormatPhone(dto.Phone), dto.Email)
	if err != nil {
		s.logger.Error("erro ao criar empresa", zap.Error(err))
		return "", errors.New("erro ao registrar usuário")
	}

	userID, err := s.userRepo.Create(ctx, domain.CreateUserDTO{
		Name:      dto.Name,
		Email:     dto.Email,
		Password:  dto.Password,
		CompanyID: companyID,
	}, passwordHash)
	if err != nil {
		s.logger.Error("erro ao criar usuário", zap.Error(err))
		return "", errors.New("erro ao registrar usuário")
	}

	return userID, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error) {
	user, err := s.userRepo.GetByEmail(ctx, dto.Email)
	if err != nil {
		s.logger.Error("erro ao buscar usuário", zap.Error(err))
		return nil, errors.New("e-mail ou senha incorretos")
	}
	if user == nil {
		return nil, errors.New("e-mail ou senha incorretos")
	}

	ok, err := auth.VerifyPassword(dto.Password, user.PasswordHash)
	if err != nil || !ok {
		if err != nil {
			s.logger.Error("erro ao verificar senha", zap.Error(err))
		}
		return nil, errors.New("e-mail ou senha incorretos")
	}

	if !user.Active {
		return nil, errors.New("conta desativada")
	}

	return s.issueTokens(ctx, user, userAgent, ip)
}

func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error) {
	session, err := s.authRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		s.logger.Error("erro ao buscar sessão", zap.Error(err))
		return nil, errors.New("refresh token inválido")
	}

	if session.ExpiresAt.Before(time.Now()) {
		s.authRepo.DeleteSession(ctx, session.ID)
		return nil, errors.New("refresh token expirado")
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil || user == nil {
		s.logger.Error("usuário da sessão não encontrado", zap.String("userId", session.UserID), zap.Error(err))
		return nil, errors.New("usuário não encontrado")
	}

	if !user.Active {
		return nil, errors.New("conta desativada")
	}

	if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil {
		s.logger.Warn("erro ao remover sessão antiga", zap.Error(err))
	}

	return s.issueTokens(ctx, user, userAgent, ip)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.authRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		s.logger.Warn("sessão não encontrada no logout", zap.Error(err))
		return nil
	}

	if err := s.authRepo.DeleteSession(ctx, session.ID); err != nil {
		s.logger.Error("erro ao remover sessão", zap.Error(err))
		return errors.New("erro ao encerrar sessão")
	}

	return nil
}

func (s *AuthServiceImpl) ParseToken(ctx context.Context, tokenString string) (string, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SigningKey), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("erro ao interpretar token: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("token inválido")
	}

	return claims.UserID, claims.CompanyID, nil
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, user *domain.User, userAgent, ip string) (*domain.Tokens, error) {
	tokens, err := s.generateTokens(user.ID, user.CompanyID)
	if err != nil {
		s.logger.Error("erro ao gerar tokens", zap.Error(err))
		return nil, errors.New("erro ao autenticar")
	}

	session := domain.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		RefreshToken: tokens.RefreshToken,
		UserAgent:    userAgent,
		IP:           ip,
		ExpiresAt:    time.Now().Add(s.jwtConfig.RefreshTokenTTL),
		CreatedAt:    time.Now(),
	}

	if err := s.authRepo.CreateSession(ctx, session); err != nil {
		s.logger.Error("erro ao salvar sessão", zap.Error(err))
		return nil, errors.New("erro ao autenticar")
	}

	return tokens, nil
}

func (s *AuthServiceImpl) generateTokens(userID, companyID string) (*domain.Tokens, error) {
	accessClaims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:    userID,
		CompanyID: companyID,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("erro ao assinar access token: %w", err)
	}

	refreshClaims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.RefreshTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:    userID,
		CompanyID: companyID,
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("erro ao assinar refresh token: %w", err)
	}

	return &domain.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
