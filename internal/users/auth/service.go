// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mixlist/mixlist/internal/audit"
	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/metrics"
	"github.com/mixlist/mixlist/internal/platform/sec"
	"github.com/mixlist/mixlist/internal/platform/validate"
)

// errInvalidCredentials is the single client-facing login failure.
//
// An unknown account and a wrong password produce the exact same error so the
// endpoint cannot be used to enumerate registered usernames or emails.
var errInvalidCredentials = apperr.Unauthorized("Invalid username or password")

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, session,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	sessionCache      SessionCacheRepository
	principals        *PrincipalCache
	recorder          audit.Recorder
	logger            *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	sessionCache SessionCacheRepository,
	principals *PrincipalCache,
	recorder audit.Recorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		sessionCache:      sessionCache,
		principals:        principals,
		recorder:          recorder,
		logger:            logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register validates, hashes, and persists a brand new user account.

New accounts always start as Regular Users; role elevation is a separate,
administrator-only operation.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: ValidationError, Conflict (if identity exists), or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	v := &validate.Validator{}
	v.Required(FieldUsername, input.Username).MaxLen(FieldUsername, input.Username, MaxUsernameLength)
	v.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)
	v.MinLen(FieldPassword, input.Password, MinPasswordLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	// Verify email uniqueness. Return a client-safe Conflict error.
	if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict error.
	if _, err := service.userRepository.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleRegularUser,
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	// Make the new account resolvable before its first request.
	if err := service.principals.Invalidate(ctx, user.ID); err != nil {
		service.logger.WarnContext(ctx, "principal_cache_refresh_failed",
			slog.Int64("user_id", user.ID), slog.Any("error", err))
	}

	service.recorder.Record(ctx, audit.ActionUserCreated, &user.ID, &user.ID)

	return user, nil
}

// # Authentication Flow

// LoginInput holds the credentials and client metadata for a login attempt.
type LoginInput struct {
	// Login accepts either a username or an email address.
	Login     string `json:"login"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

/*
Login authenticates credentials and opens a new opaque-token session.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *User: The authenticated account
  - string: The plaintext session token (shown to the client exactly once)
  - error: The indistinct credential failure, or storage errors
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*User, string, error) {
	login := strings.TrimSpace(input.Login)
	if login == "" || input.Password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", errInvalidCredentials
	}

	user, err := service.userRepository.FindByUsername(ctx, login)
	if err != nil {
		user, err = service.userRepository.FindByEmail(ctx, login)
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", errInvalidCredentials
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", errInvalidCredentials
	}

	token, err := service.startSession(ctx, user, input.IPAddress, input.UserAgent)
	if err != nil {
		return nil, "", err
	}

	if err := service.userRepository.TouchLastLogin(ctx, user.ID); err != nil {
		service.logger.WarnContext(ctx, "touch_last_login_failed",
			slog.Int64("user_id", user.ID), slog.Any("error", err))
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	service.recorder.Record(ctx, audit.ActionUserLogin, &user.ID, nil)

	return user, token, nil
}

// startSession mints the opaque token, persists its hash durably, and primes
// the volatile cache.
func (service *Service) startSession(ctx context.Context, user *User, ipAddress, userAgent string) (string, error) {
	token, err := sec.GenerateSecureToken(SessionTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_failed: %w", err)
	}

	session := &Session{
		UserID:    user.ID,
		TokenHash: sec.HashToken(token),
		IPAddress: ipAddress,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(SessionTTL),
	}

	if err := service.sessionRepository.Create(ctx, session); err != nil {
		return "", fmt.Errorf("auth_service_session_failed: %w", err)
	}

	// Cache priming is best-effort: a failed Set only costs later lookups a
	// Postgres round trip.
	if err := service.sessionCache.Set(ctx, session.TokenHash, user.ID, SessionTTL); err != nil {
		service.logger.WarnContext(ctx, "session_cache_set_failed", slog.Any("error", err))
	}

	return token, nil
}

// # Session Resolution

/*
ResolveSession maps an opaque token to the live principal behind it.

The session row only proves the token is valid; the principal itself is
re-resolved through the account snapshot on every call. A role change or
account deletion therefore takes effect on the very next request, even for
sessions opened before the change.

Parameters:
  - context: context.Context
  - token: string (the plaintext token from the client)

Returns:
  - *sec.Principal: The live authorization view
  - error: apperr.Unauthorized for unknown/expired tokens
*/
func (service *Service) ResolveSession(ctx context.Context, token string) (*sec.Principal, error) {
	tokenHash := sec.HashToken(token)

	// Fast path: volatile cache.
	if userID, err := service.sessionCache.Get(ctx, tokenHash); err == nil {
		metrics.SessionResolutionsTotal.WithLabelValues("hit").Inc()
		return service.resolvePrincipal(ctx, userID)
	}

	// Slow path: durable store.
	session, err := service.sessionRepository.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		metrics.SessionResolutionsTotal.WithLabelValues("miss").Inc()
		return nil, apperr.Unauthorized("Invalid or expired session")
	}

	now := time.Now()
	if session.Expired(now) {
		metrics.SessionResolutionsTotal.WithLabelValues("miss").Inc()
		_ = service.sessionRepository.DeleteByTokenHash(ctx, tokenHash)
		return nil, apperr.Unauthorized("Invalid or expired session")
	}

	// Backfill the cache with the session's remaining lifetime.
	if err := service.sessionCache.Set(ctx, tokenHash, session.UserID, session.ExpiresAt.Sub(now)); err != nil {
		service.logger.WarnContext(ctx, "session_cache_backfill_failed", slog.Any("error", err))
	}

	metrics.SessionResolutionsTotal.WithLabelValues("hit").Inc()
	return service.resolvePrincipal(ctx, session.UserID)
}

// resolvePrincipal looks the account up in the principal snapshot. A deleted
// account invalidates every session it had.
func (service *Service) resolvePrincipal(ctx context.Context, userID int64) (*sec.Principal, error) {
	principal, err := service.principals.Lookup(ctx, userID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired session")
	}
	return principal, nil
}

// # Session Teardown

/*
Logout terminates the session behind the given token.

The operation is idempotent: logging out an already-dead token succeeds
silently.

Parameters:
  - context: context.Context
  - token: string
  - actorID: *int64 (the authenticated principal, nil if the token was already dead)

Returns:
  - error: Storage failures only
*/
func (service *Service) Logout(ctx context.Context, token string, actorID *int64) error {
	tokenHash := sec.HashToken(token)

	if err := service.sessionRepository.DeleteByTokenHash(ctx, tokenHash); err != nil {
		return err
	}

	if err := service.sessionCache.Delete(ctx, tokenHash); err != nil {
		service.logger.WarnContext(ctx, "session_cache_delete_failed", slog.Any("error", err))
	}

	if actorID != nil {
		service.recorder.Record(ctx, audit.ActionUserLogout, actorID, nil)
	}

	return nil
}

/*
Me returns the full account behind an authenticated principal.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound if the account vanished mid-session
*/
func (service *Service) Me(ctx context.Context, userID int64) (*User, error) {
	return service.userRepository.FindByID(ctx, userID)
}
