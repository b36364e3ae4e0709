package service

import (
	"context"
	"errors"
	"fmt"

	"emsana-backend/internal/models"
	"emsana-backend/internal/store"

	"go.uber.org/zap"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	CheckPassword(password, hashedPassword string) bool
}

// LoginResult is the outcome of a credential check. OK is false for an
// unknown identifier and for a wrong password alike.
type LoginResult struct {
	OK   bool
	User *models.User
}

// Auth implements registration and login.
type Auth struct {
	store      store.Store
	hasher     PasswordHasher
	identifier models.IdentifierField
	logger     *zap.Logger
}

func NewAuth(s store.Store, hasher PasswordHasher, identifier models.IdentifierField, logger *zap.Logger) *Auth {
	return &Auth{store: s, hasher: hasher, identifier: identifier, logger: logger}
}

// Identifier returns the user field used for login.
func (a *Auth) Identifier() models.IdentifierField {
	return a.identifier
}

// Register stores u with password as its hashed credential.
// It returns store.ErrConflict, without writing, when the email or iin is taken.
func (a *Auth) Register(ctx context.Context, u *models.User, password string) error {
	if u.Role == "" {
		u.Role = models.RolePatient
	}

	err := a.store.Transaction(ctx, func(tx store.Store) error {
		taken, err := tx.IdentityTaken(ctx, u.Email, u.IIN)
		if err != nil {
			return err
		}
		if taken {
			return store.ErrConflict
		}

		hash, err := a.hasher.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u.Password = hash
		return tx.CreateUser(ctx, u)
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			a.logger.Info("Registration rejected, identity exists", zap.String("role", string(u.Role)))
		}
		return err
	}

	a.logger.Info("User registered", zap.Uint("user_id", u.ID), zap.String("role", string(u.Role)))
	return nil
}

// Login checks password against the user whose identifier field equals value.
// Bad credentials are reported through LoginResult; only store failures return an error.
func (a *Auth) Login(ctx context.Context, value, password string) (LoginResult, error) {
	u, err := a.store.FindUserByIdentifier(ctx, a.identifier, value)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			a.logger.Debug("Login failed, unknown identifier")
			return LoginResult{}, nil
		}
		return LoginResult{}, err
	}

	if !a.hasher.CheckPassword(password, u.Password) {
		a.logger.Debug("Login failed, wrong password", zap.Uint("user_id", u.ID))
		return LoginResult{}, nil
	}
	return LoginResult{OK: true, User: u}, nil
}
