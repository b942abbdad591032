// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

// SettingsID is the ID of the single settings record.
const SettingsID int64 = 1

// MinPasswordLength is the shortest console password accepted.
const MinPasswordLength = 8

var (
	// ErrWrongPassword is returned when the current password does not match.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrPasswordMismatch is returned when the new password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrPasswordTooShort is returned for passwords under MinPasswordLength.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

// Store provides access to the console settings record.
type Store struct {
	c *memstore.Collection[models.Settings]
}

// New creates a settings store over the given collection.
func New(c *memstore.Collection[models.Settings]) *Store {
	return &Store{c: c}
}

// Get returns the settings. If none were seeded, defaults are returned.
func (s *Store) Get(ctx context.Context) (models.Settings, error) {
	st, err := s.c.Get(ctx, SettingsID)
	if errors.Is(err, memstore.ErrNotFound) {
		return models.Settings{Meta: models.Meta{ID: SettingsID}, OrgName: models.DefaultSiteName}, nil
	}
	return st, err
}

// Save stores organization and payout details. The password hash is never
// touched here; use ChangePassword.
func (s *Store) Save(ctx context.Context, in models.Settings) (models.Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	in.ID = SettingsID
	in.PasswordHash = current.PasswordHash

	out, err := s.c.Replace(ctx, in)
	if errors.Is(err, memstore.ErrNotFound) {
		return s.c.Insert(ctx, in)
	}
	return out, err
}

// SetPassword hashes and stores a new console password without checking the
// old one. Used when seeding from configuration.
func (s *Store) SetPassword(ctx context.Context, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	current, err := s.Get(ctx)
	if err != nil {
		return err
	}
	current.PasswordHash = hash
	if _, err := s.c.Replace(ctx, current); errors.Is(err, memstore.ErrNotFound) {
		_, err = s.c.Insert(ctx, current)
		return err
	} else if err != nil {
		return err
	}
	return nil
}

// CheckPassword reports whether password matches the stored hash. With no
// hash stored every password is rejected.
func (s *Store) CheckPassword(ctx context.Context, password string) (bool, error) {
	st, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if len(st.PasswordHash) == 0 {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword(st.PasswordHash, []byte(password)) == nil, nil
}

// ChangePassword verifies the current password and replaces it.
func (s *Store) ChangePassword(ctx context.Context, current, next, confirm string) error {
	if next != confirm {
		return ErrPasswordMismatch
	}
	if len(next) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	ok, err := s.CheckPassword(ctx, current)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWrongPassword
	}
	return s.SetPassword(ctx, next)
}
