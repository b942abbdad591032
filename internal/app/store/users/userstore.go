// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/ohenegyan12/church-management/internal/app/store/collections"
	"github.com/ohenegyan12/church-management/internal/domain/models"
)

var (
	// ErrDuplicateEmail is returned when another user already has the email.
	ErrDuplicateEmail = errors.New("a user with that email already exists")
	// ErrDuplicateRole is returned when a role with the same name exists.
	ErrDuplicateRole = errors.New("a role with that name already exists")
)

// PermissionOptions are the checkboxes of the add-role form.
var PermissionOptions = []string{
	"View Dashboard", "Manage Users", "Manage Members", "Manage Clergy",
	"Manage Finance", "Manage Events", "Generate Reports", "Manage Settings",
}

// Store keeps users and roles consistent: emails are unique ignoring case
// and each role's user count follows assignments.
type Store struct {
	set *collections.Set
}

func New(set *collections.Set) *Store {
	return &Store{set: set}
}

// EmailTaken reports whether a user other than exceptID has email.
func (s *Store) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	key := text.Fold(strings.TrimSpace(email))
	rows, err := s.set.Users.Find(ctx, func(u models.User) bool {
		return u.ID != exceptID && text.Fold(u.Email) == key
	})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Roles lists role names in seed order.
func (s *Store) Roles(ctx context.Context) ([]string, error) {
	rows, err := s.set.Roles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out, nil
}

// AddRole creates a role with no users. An empty permission list is
// recorded as "No permissions".
func (s *Store) AddRole(ctx context.Context, name string, permissions []string) (models.Role, error) {
	name = strings.TrimSpace(name)
	key := text.Fold(name)
	dup, err := s.set.Roles.Find(ctx, func(r models.Role) bool { return text.Fold(r.Name) == key })
	if err != nil {
		return models.Role{}, err
	}
	if len(dup) > 0 {
		return models.Role{}, ErrDuplicateRole
	}

	var picked []string
	for _, p := range PermissionOptions {
		if slices.Contains(permissions, p) {
			picked = append(picked, p)
		}
	}
	summary := "No permissions"
	if len(picked) > 0 {
		summary = strings.Join(picked, ", ")
	}
	return s.set.Roles.Insert(ctx, models.Role{Name: name, Permissions: summary})
}

// Reassign moves one user from role from to role to. Either may be empty,
// for a new or deleted user. Counts never drop below zero.
func (s *Store) Reassign(ctx context.Context, from, to string) error {
	if from == to {
		return nil
	}
	_, err := s.set.Roles.UpdateAll(ctx, func(r *models.Role) bool {
		switch r.Name {
		case from:
			if r.Users > 0 {
				r.Users--
			}
			return true
		case to:
			r.Users++
			return true
		}
		return false
	})
	return err
}
