package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/apostol1s/technico-web/internal/domain"
	"github.com/apostol1s/technico-web/internal/store"
)

const sessionKeyPrefix = "session:"

// AuthService issues and resolves sign-in session tokens. Credentials are
// verified against non-deleted owners; tokens live in the KV store with a
// TTL.
type AuthService interface {
	SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error)

	// Resolve returns the owner behind a session token, or ErrNotFound
	// when the token is unknown or expired.
	Resolve(ctx context.Context, token string) (*domain.Owner, error)
	SignOut(ctx context.Context, token string) error
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token string        `json:"token"`
	Owner *domain.Owner `json:"owner"`
}

type authService struct {
	owners OwnerService
	kv     store.KV
	ttl    time.Duration
	logger *zap.Logger
}

func NewAuthService(owners OwnerService, kv store.KV, ttl time.Duration, logger *zap.Logger) AuthService {
	return &authService{owners: owners, kv: kv, ttl: ttl, logger: logger}
}

func (s *authService) SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error) {
	owner, err := s.owners.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	key := sessionKeyPrefix + token
	if err := s.kv.Set(ctx, key, strconv.FormatInt(owner.ID, 10), s.ttl); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("Owner signed in", zap.Int64("owner_id", owner.ID))
	return &SignInResponse{Token: token, Owner: owner}, nil
}

func (s *authService) Resolve(ctx context.Context, token string) (*domain.Owner, error) {
	val, err := s.kv.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return nil, fmt.Errorf("session: %w", domain.ErrNotFound)
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session: %w", domain.ErrNotFound)
	}
	owner, err := s.owners.FindByID(ctx, id)
	if err != nil || owner.Deleted {
		return nil, fmt.Errorf("session owner %d: %w", id, domain.ErrNotFound)
	}
	return owner, nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	return s.kv.Delete(ctx, sessionKeyPrefix+token)
}
