// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

/*
Package account handles user account administration and profile management.

It covers the administrator-facing directory (list, create, delete, role
assignment) and the self-service profile operations every member gets.

# Architecture

  - Entities: This package depends on the auth package for the User entity
    and its repositories; it adds read views and administrative rules.
  - Self-protection: An administrator can never delete their own account or
    change their own role. Both are rejected with Forbidden so the last
    administrator cannot lock the system out of administration.
*/
package account

import (
	"github.com/mixlist/mixlist/internal/users/auth"
)

// # Read Views

// UserView is the directory listing projection of an account.
// It adds the human-readable role name and omits credential material.
type UserView struct {
	ID        int64  `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	RoleID    int    `json:"role_id"`
	RoleName  string `json:"role_name"`
	CreatedAt string `json:"created_at"`
}

// NewUserView projects an account entity into its directory view.
func NewUserView(user *auth.User) *UserView {
	return &UserView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		RoleID:    int(user.Role),
		RoleName:  user.Role.Name(),
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// # Write Inputs

// CreateInput holds the fields an administrator supplies for a new account.
type CreateInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   *int   `json:"role_id"`
}

// UpdateInput is the partial-update payload for an account.
//
// Nil fields are left untouched. CurrentPassword is required when a
// non-administrator changes their own password.
type UpdateInput struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	Password        *string `json:"password"`
	CurrentPassword *string `json:"current_password"`
}

// ChangeRoleInput carries the new role assignment.
type ChangeRoleInput struct {
	RoleID *int `json:"role_id"`
}
