// Package service implements agent registration and token issuance.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"estate_crm_backend/internal/auth/repository"
	"estate_crm_backend/platform/apperr"
	"estate_crm_backend/platform/config"
	"estate_crm_backend/platform/logger"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

type Service struct {
	repo *repository.Repository
	cfg  *config.Config
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg *config.Config, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Register creates an agent account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, name, email, plainPassword string) (*repository.Agent, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	agent, err := s.repo.Create(ctx, strings.TrimSpace(name), normalizeEmail(email), string(hash))
	if err != nil {
		s.log.AuthEvent("register", email, false)
		return nil, err
	}

	s.log.AuthEvent("register", agent.Email, true)
	return agent, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (access, refresh string, err error) {
	agent, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.log.AuthEvent("login", email, false)
		return "", "", apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(plainPassword)); err != nil {
		s.log.AuthEvent("login", email, false)
		return "", "", apperr.Unauthorized("invalid credentials")
	}

	s.log.AuthEvent("login", agent.Email, true)
	return s.issueTokens(agent)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (access, refresh string, err error) {
	claims, err := s.parseToken(refreshToken, refreshTokenType)
	if err != nil {
		return "", "", err
	}

	sub, _ := claims["sub"].(string)
	agentID, err := uuid.Parse(sub)
	if err != nil {
		return "", "", apperr.Unauthorized("invalid token subject")
	}

	agent, err := s.repo.GetByID(ctx, agentID)
	if err != nil {
		return "", "", apperr.Unauthorized("invalid credentials")
	}

	return s.issueTokens(agent)
}

// GetProfile returns the agent for the given ID.
func (s *Service) GetProfile(ctx context.Context, agentID uuid.UUID) (*repository.Agent, error) {
	return s.repo.GetByID(ctx, agentID)
}

func (s *Service) issueTokens(agent *repository.Agent) (string, string, error) {
	access, err := s.signJWT(agent, accessTokenType, s.cfg.JWT.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.signJWT(agent, refreshTokenType, s.cfg.JWT.RefreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *Service) signJWT(agent *repository.Agent, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   agent.ID.String(),
		"email": agent.Email,
		"type":  tokenType,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}
	return signed, nil
}

func (s *Service) parseToken(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Unauthorized("unexpected signing method")
		}
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Unauthorized("invalid token claims")
	}
	if typ, _ := claims["type"].(string); typ != wantType {
		return nil, apperr.Unauthorized("unexpected token type")
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
