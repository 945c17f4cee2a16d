// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mixlist/mixlist/internal/audit"
	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/sec"
	"github.com/mixlist/mixlist/internal/platform/validate"
	"github.com/mixlist/mixlist/internal/users/auth"
	"github.com/mixlist/mixlist/pkg/slice"
)

// # Service Layer

// Service orchestrates account administration and profile management.
//
// Route-level guards establish WHO may call each operation; this layer
// enforces the remaining per-target rules (ownership, self-protection)
// that depend on which account is being touched.
type Service struct {
	userRepository    auth.UserRepository
	sessionRepository auth.SessionRepository
	principals        *auth.PrincipalCache
	recorder          audit.Recorder
	logger            *slog.Logger
}

// NewService constructs a new account [Service] with its dependencies.
func NewService(
	userRepo auth.UserRepository,
	sessionRepo auth.SessionRepository,
	principals *auth.PrincipalCache,
	recorder audit.Recorder,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		principals:        principals,
		recorder:          recorder,
		logger:            logger,
	}
}

// # Directory (Administrator)

/*
List returns every account as a directory view, ordered by ID.

Parameters:
  - context: context.Context

Returns:
  - []*UserView: All accounts with role names
  - error: Database retrieval failures
*/
func (service *Service) List(ctx context.Context) ([]*UserView, error) {
	users, err := service.userRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return slice.Map(users, NewUserView), nil
}

/*
Create provisions a new account on behalf of an administrator.

Unlike self-registration, the administrator chooses the initial role.

Parameters:
  - context: context.Context
  - actor: *sec.Principal (the administrator)
  - input: CreateInput

Returns:
  - *auth.User: Created entity
  - error: ValidationError, Conflict, or storage errors
*/
func (service *Service) Create(ctx context.Context, actor *sec.Principal, input CreateInput) (*auth.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	role := sec.RoleRegularUser
	if input.RoleID != nil {
		role = sec.Role(*input.RoleID)
	}

	v := &validate.Validator{}
	v.Required(auth.FieldUsername, input.Username).MaxLen(auth.FieldUsername, input.Username, auth.MaxUsernameLength)
	v.Required(auth.FieldEmail, input.Email).Email(auth.FieldEmail, input.Email)
	v.MinLen(auth.FieldPassword, input.Password, auth.MinPasswordLength)
	v.Custom("role_id", !role.Valid(), "Invalid role ID. Must be 0 (Admin), 1 (Management), 2 (Regular User), or 3 (Unregistered)")
	if err := v.Err(); err != nil {
		return nil, err
	}

	if _, err := service.userRepository.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.Conflict("Username already exists")
	}
	if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email already exists")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	user := &auth.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("account_service_create_failed: %w", err)
	}

	service.refreshPrincipal(ctx, user.ID)
	service.recorder.Record(ctx, audit.ActionUserCreated, &actor.ID, &user.ID)

	return user, nil
}

// # Profile Access

/*
Get returns one account, visible to administrators and the account owner.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - userID: int64

Returns:
  - *UserView: The account's directory view
  - error: apperr.Forbidden for other accounts, apperr.NotFound if absent
*/
func (service *Service) Get(ctx context.Context, actor *sec.Principal, userID int64) (*UserView, error) {
	if !sec.OwnerOrRole(actor, userID, sec.RoleAdministrator) {
		return nil, apperr.Forbidden("You can only view your own profile")
	}

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return NewUserView(user), nil
}

/*
Update applies a partial set of changes to an account.

Administrators may update any account; everyone else only their own. A
non-administrator changing their password must present the current one.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - userID: int64
  - input: UpdateInput

Returns:
  - error: Forbidden, ValidationError, Conflict, or storage errors
*/
func (service *Service) Update(ctx context.Context, actor *sec.Principal, userID int64, input UpdateInput) error {
	if !sec.OwnerOrRole(actor, userID, sec.RoleAdministrator) {
		return apperr.Forbidden("You can only update your own profile")
	}

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	changed := false

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)

		v := &validate.Validator{}
		v.Required(auth.FieldUsername, username).MaxLen(auth.FieldUsername, username, auth.MaxUsernameLength)
		if err := v.Err(); err != nil {
			return err
		}

		if other, err := service.userRepository.FindByUsername(ctx, username); err == nil && other.ID != userID {
			return apperr.Conflict("Username already taken")
		}

		user.Username = username
		changed = true
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))

		v := &validate.Validator{}
		v.Required(auth.FieldEmail, email).Email(auth.FieldEmail, email)
		if err := v.Err(); err != nil {
			return err
		}

		if other, err := service.userRepository.FindByEmail(ctx, email); err == nil && other.ID != userID {
			return apperr.Conflict("Email already taken")
		}

		user.Email = email
		changed = true
	}

	if input.Password != nil {
		// Administrators may reset passwords without the current one.
		if actor.Role != sec.RoleAdministrator {
			if input.CurrentPassword == nil || *input.CurrentPassword == "" {
				return validate.RequiredError("current_password", "Current password is required")
			}
			if !sec.CheckPasswordHash(*input.CurrentPassword, user.PasswordHash) {
				return apperr.Unauthorized("Current password is incorrect")
			}
		}

		v := &validate.Validator{}
		v.MinLen(auth.FieldPassword, *input.Password, auth.MinPasswordLength)
		if err := v.Err(); err != nil {
			return err
		}

		hashedPassword, err := sec.HashPassword(*input.Password)
		if err != nil {
			return fmt.Errorf("account_service_hash_failed: %w", err)
		}

		if err := service.userRepository.UpdatePassword(ctx, userID, hashedPassword); err != nil {
			return err
		}
		changed = true
	}

	if !changed {
		return apperr.ValidationError("No fields to update")
	}

	if input.Username != nil || input.Email != nil {
		if err := service.userRepository.Update(ctx, user); err != nil {
			return err
		}
	}

	service.refreshPrincipal(ctx, userID)
	service.recorder.Record(ctx, audit.ActionUserUpdated, &actor.ID, &userID)

	return nil
}

// # Account Removal (Administrator)

/*
Delete permanently removes an account and all of its sessions.

Self-protection: an administrator deleting their own account is rejected
with Forbidden.

Parameters:
  - context: context.Context
  - actor: *sec.Principal (the administrator)
  - userID: int64

Returns:
  - error: Forbidden, NotFound, or storage errors
*/
func (service *Service) Delete(ctx context.Context, actor *sec.Principal, userID int64) error {
	if actor.ID == userID {
		return apperr.Forbidden("Cannot delete your own account")
	}

	if _, err := service.userRepository.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := service.userRepository.Delete(ctx, userID); err != nil {
		return err
	}

	// Kill every live session; the principal snapshot drop below makes any
	// straggler token resolve to nothing anyway.
	if err := service.sessionRepository.DeleteAllForUser(ctx, userID); err != nil {
		service.logger.WarnContext(ctx, "delete_user_sessions_failed",
			slog.Int64("user_id", userID), slog.Any("error", err))
	}

	service.refreshPrincipal(ctx, userID)
	service.recorder.Record(ctx, audit.ActionUserDeleted, &actor.ID, &userID)
	service.logger.WarnContext(ctx, "user_account_deleted", slog.Int64("user_id", userID))

	return nil
}

// # Role Assignment (Administrator)

/*
ChangeRole reassigns an account's role.

Self-protection: an administrator changing their own role is rejected with
Forbidden. Existing sessions stay alive — the fresh principal resolution on
the next request already carries the new role.

Parameters:
  - context: context.Context
  - actor: *sec.Principal (the administrator)
  - userID: int64
  - input: ChangeRoleInput

Returns:
  - *UserView: The account with its new role
  - error: Forbidden, ValidationError, NotFound, or storage errors
*/
func (service *Service) ChangeRole(ctx context.Context, actor *sec.Principal, userID int64, input ChangeRoleInput) (*UserView, error) {
	if actor.ID == userID {
		return nil, apperr.Forbidden("Cannot change your own role")
	}

	if input.RoleID == nil || !sec.Role(*input.RoleID).Valid() {
		return nil, validate.RequiredError("role_id",
			"Invalid role ID. Must be 0 (Admin), 1 (Management), 2 (Regular User), or 3 (Unregistered)")
	}

	if _, err := service.userRepository.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := service.userRepository.UpdateRole(ctx, userID, *input.RoleID); err != nil {
		return nil, err
	}

	service.refreshPrincipal(ctx, userID)
	service.recorder.Record(ctx, audit.ActionUserRoleChanged, &actor.ID, &userID)

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return NewUserView(user), nil
}

// refreshPrincipal folds an account change into the live snapshot so the
// next request sees it.
func (service *Service) refreshPrincipal(ctx context.Context, userID int64) {
	if err := service.principals.Invalidate(ctx, userID); err != nil {
		service.logger.WarnContext(ctx, "principal_cache_refresh_failed",
			slog.Int64("user_id", userID), slog.Any("error", err))
	}
}
