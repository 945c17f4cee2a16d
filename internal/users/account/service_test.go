// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package account_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixlist/mixlist/internal/audit"
	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/dberr"
	"github.com/mixlist/mixlist/internal/platform/sec"
	"github.com/mixlist/mixlist/internal/users/account"
	"github.com/mixlist/mixlist/internal/users/auth"
	"github.com/mixlist/mixlist/pkg/pointer"
)

// # In-Memory Fakes

type fakeUserRepo struct {
	users  map[int64]*auth.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*auth.User{}}
}

func (repo *fakeUserRepo) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	user, ok := repo.users[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeUserRepo) ListAll(ctx context.Context) ([]*auth.User, error) {
	all := make([]*auth.User, 0, len(repo.users))
	for _, user := range repo.users {
		all = append(all, user)
	}
	return all, nil
}

func (repo *fakeUserRepo) Create(ctx context.Context, user *auth.User) error {
	repo.nextID++
	user.ID = repo.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	repo.users[user.ID] = &stored
	return nil
}

func (repo *fakeUserRepo) Update(ctx context.Context, user *auth.User) error {
	if _, ok := repo.users[user.ID]; !ok {
		return dberr.ErrNotFound
	}
	stored := *user
	repo.users[user.ID] = &stored
	return nil
}

func (repo *fakeUserRepo) UpdatePassword(ctx context.Context, userID int64, newHash string) error {
	user, ok := repo.users[userID]
	if !ok {
		return dberr.ErrNotFound
	}
	user.PasswordHash = newHash
	return nil
}

func (repo *fakeUserRepo) UpdateRole(ctx context.Context, userID int64, role int) error {
	user, ok := repo.users[userID]
	if !ok {
		return dberr.ErrNotFound
	}
	user.Role = sec.Role(role)
	return nil
}

func (repo *fakeUserRepo) TouchLastLogin(ctx context.Context, userID int64) error {
	return nil
}

func (repo *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := repo.users[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(repo.users, id)
	return nil
}

// fakeSessionRepo only tracks per-user teardown; the rest is unused here.
type fakeSessionRepo struct {
	deletedFor []int64
}

func (repo *fakeSessionRepo) Create(ctx context.Context, session *auth.Session) error { return nil }

func (repo *fakeSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*auth.Session, error) {
	return nil, dberr.ErrNotFound
}

func (repo *fakeSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return nil
}

func (repo *fakeSessionRepo) DeleteAllForUser(ctx context.Context, userID int64) error {
	repo.deletedFor = append(repo.deletedFor, userID)
	return nil
}

func (repo *fakeSessionRepo) DeleteExpired(ctx context.Context) error { return nil }

type fakeRecorder struct {
	actions []audit.Action
}

func (recorder *fakeRecorder) Record(ctx context.Context, action audit.Action, actorID, targetID *int64) {
	recorder.actions = append(recorder.actions, action)
}

// # Test Harness

type harness struct {
	service    *account.Service
	users      *fakeUserRepo
	sessions   *fakeSessionRepo
	principals *auth.PrincipalCache
	recorder   *fakeRecorder
}

func newHarness() *harness {
	logger := slog.New(slog.DiscardHandler)

	h := &harness{
		users:    newFakeUserRepo(),
		sessions: &fakeSessionRepo{},
		recorder: &fakeRecorder{},
	}
	h.principals = auth.NewPrincipalCache(h.users, logger)
	h.service = account.NewService(h.users, h.sessions, h.principals, h.recorder, logger)
	return h
}

// seed stores an account directly, bypassing validation and hashing.
func (h *harness) seed(username string, role sec.Role) *auth.User {
	user := &auth.User{Username: username, Email: username + "@example.com", Role: role}
	_ = h.users.Create(context.Background(), user)
	return user
}

var admin = &sec.Principal{ID: 100, Username: "root", Role: sec.RoleAdministrator}

// # Directory

/*
TestCreate verifies administrator provisioning with an explicit role.
*/
func TestCreate(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	t.Run("with_chosen_role", func(t *testing.T) {
		user, err := h.service.Create(ctx, admin, account.CreateInput{
			Username: "curator",
			Email:    "Curator@Example.com",
			Password: "hunter22",
			RoleID:   pointer.To(int(sec.RoleManagement)),
		})
		require.NoError(t, err)
		assert.Equal(t, sec.RoleManagement, user.Role)
		assert.Equal(t, "curator@example.com", user.Email)
		assert.Contains(t, h.recorder.actions, audit.ActionUserCreated)
	})

	t.Run("role_defaults_to_regular", func(t *testing.T) {
		user, err := h.service.Create(ctx, admin, account.CreateInput{
			Username: "plain",
			Email:    "plain@example.com",
			Password: "hunter22",
		})
		require.NoError(t, err)
		assert.Equal(t, sec.RoleRegularUser, user.Role)
	})

	t.Run("invalid_role_rejected", func(t *testing.T) {
		_, err := h.service.Create(ctx, admin, account.CreateInput{
			Username: "odd",
			Email:    "odd@example.com",
			Password: "hunter22",
			RoleID:   pointer.To(42),
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("duplicate_username_conflict", func(t *testing.T) {
		_, err := h.service.Create(ctx, admin, account.CreateInput{
			Username: "curator",
			Email:    "other@example.com",
			Password: "hunter22",
		})
		require.Error(t, err)
		assert.Equal(t, "Username already exists", apperr.As(err).Message)
	})
}

/*
TestList verifies the directory projection carries role names, never hashes.
*/
func TestList(t *testing.T) {
	h := newHarness()
	h.seed("alice", sec.RoleRegularUser)
	h.seed("boss", sec.RoleManagement)

	views, err := h.service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	byName := map[string]*account.UserView{}
	for _, view := range views {
		byName[view.Username] = view
	}
	assert.Equal(t, "Regular User", byName["alice"].RoleName)
	assert.Equal(t, "Management", byName["boss"].RoleName)
}

// # Profile Access

/*
TestGet verifies profile reads are owner-or-administrator only.
*/
func TestGet(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	user := h.seed("alice", sec.RoleRegularUser)
	self := user.Principal()

	view, err := h.service.Get(ctx, self, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)

	_, err = h.service.Get(ctx, admin, user.ID)
	assert.NoError(t, err)

	other := h.seed("bob", sec.RoleRegularUser)
	_, err = h.service.Get(ctx, other.Principal(), user.ID)
	require.Error(t, err)
	assert.Equal(t, "You can only view your own profile", apperr.As(err).Message)
}

/*
TestUpdate covers the partial-update rules, including the current-password
requirement for non-administrators.
*/
func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("rename_self", func(t *testing.T) {
		h := newHarness()
		user := h.seed("alice", sec.RoleRegularUser)

		err := h.service.Update(ctx, user.Principal(), user.ID, account.UpdateInput{
			Username: pointer.To("alicia"),
		})
		require.NoError(t, err)

		stored, _ := h.users.FindByID(ctx, user.ID)
		assert.Equal(t, "alicia", stored.Username)
		assert.Contains(t, h.recorder.actions, audit.ActionUserUpdated)
	})

	t.Run("username_taken", func(t *testing.T) {
		h := newHarness()
		h.seed("taken", sec.RoleRegularUser)
		user := h.seed("alice", sec.RoleRegularUser)

		err := h.service.Update(ctx, user.Principal(), user.ID, account.UpdateInput{
			Username: pointer.To("taken"),
		})
		require.Error(t, err)
		assert.Equal(t, "Username already taken", apperr.As(err).Message)
	})

	t.Run("password_change_needs_current", func(t *testing.T) {
		h := newHarness()
		user := h.seed("alice", sec.RoleRegularUser)

		err := h.service.Update(ctx, user.Principal(), user.ID, account.UpdateInput{
			Password: pointer.To("new-secret"),
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("wrong_current_password", func(t *testing.T) {
		h := newHarness()
		hash, err := sec.HashPassword("hunter22")
		require.NoError(t, err)
		user := h.seed("alice", sec.RoleRegularUser)
		require.NoError(t, h.users.UpdatePassword(ctx, user.ID, hash))

		err = h.service.Update(ctx, user.Principal(), user.ID, account.UpdateInput{
			Password:        pointer.To("new-secret"),
			CurrentPassword: pointer.To("not-hunter22"),
		})
		require.Error(t, err)
		assert.Equal(t, "Current password is incorrect", apperr.As(err).Message)
	})

	t.Run("admin_resets_without_current", func(t *testing.T) {
		h := newHarness()
		user := h.seed("alice", sec.RoleRegularUser)

		err := h.service.Update(ctx, admin, user.ID, account.UpdateInput{
			Password: pointer.To("new-secret"),
		})
		require.NoError(t, err)

		stored, _ := h.users.FindByID(ctx, user.ID)
		assert.True(t, sec.CheckPasswordHash("new-secret", stored.PasswordHash))
	})

	t.Run("empty_payload_rejected", func(t *testing.T) {
		h := newHarness()
		user := h.seed("alice", sec.RoleRegularUser)

		err := h.service.Update(ctx, user.Principal(), user.ID, account.UpdateInput{})
		require.Error(t, err)
		assert.Equal(t, "No fields to update", apperr.As(err).Message)
	})

	t.Run("other_account_forbidden", func(t *testing.T) {
		h := newHarness()
		user := h.seed("alice", sec.RoleRegularUser)
		other := h.seed("bob", sec.RoleRegularUser)

		err := h.service.Update(ctx, other.Principal(), user.ID, account.UpdateInput{
			Username: pointer.To("hijacked"),
		})
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}

// # Removal And Roles

/*
TestDelete verifies removal tears down sessions and blocks self-deletion.
*/
func TestDelete(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	user := h.seed("alice", sec.RoleRegularUser)

	t.Run("self_deletion_forbidden", func(t *testing.T) {
		selfAdmin := &sec.Principal{ID: user.ID, Role: sec.RoleAdministrator}
		err := h.service.Delete(ctx, selfAdmin, user.ID)
		require.Error(t, err)
		assert.Equal(t, "Cannot delete your own account", apperr.As(err).Message)
	})

	t.Run("removes_account_and_sessions", func(t *testing.T) {
		require.NoError(t, h.service.Delete(ctx, admin, user.ID))

		_, err := h.users.FindByID(ctx, user.ID)
		assert.Error(t, err)
		assert.Contains(t, h.sessions.deletedFor, user.ID)
		assert.Contains(t, h.recorder.actions, audit.ActionUserDeleted)
	})

	t.Run("missing_account_not_found", func(t *testing.T) {
		err := h.service.Delete(ctx, admin, 999)
		assert.ErrorIs(t, err, dberr.ErrNotFound)
	})
}

/*
TestChangeRole verifies reassignment, validation, and self-protection.
*/
func TestChangeRole(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	user := h.seed("alice", sec.RoleRegularUser)

	t.Run("self_change_forbidden", func(t *testing.T) {
		selfAdmin := &sec.Principal{ID: user.ID, Role: sec.RoleAdministrator}
		_, err := h.service.ChangeRole(ctx, selfAdmin, user.ID, account.ChangeRoleInput{
			RoleID: pointer.To(int(sec.RoleManagement)),
		})
		require.Error(t, err)
		assert.Equal(t, "Cannot change your own role", apperr.As(err).Message)
	})

	t.Run("missing_role_rejected", func(t *testing.T) {
		_, err := h.service.ChangeRole(ctx, admin, user.ID, account.ChangeRoleInput{})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("reassigns_and_refreshes_principal", func(t *testing.T) {
		view, err := h.service.ChangeRole(ctx, admin, user.ID, account.ChangeRoleInput{
			RoleID: pointer.To(int(sec.RoleManagement)),
		})
		require.NoError(t, err)
		assert.Equal(t, "Management", view.RoleName)
		assert.Contains(t, h.recorder.actions, audit.ActionUserRoleChanged)

		// The live snapshot already carries the new role.
		principal, err := h.principals.Lookup(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, sec.RoleManagement, principal.Role)
	})
}
