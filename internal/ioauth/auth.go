// Package ioauth implements the Authenticator interface on top of the
// users table. Passwords are stored as salted SHA-256 hex digests for
// compatibility with credentials written by earlier deployments of the
// dashboard.
package ioauth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/watertrack/jjmd/internal/iodb"
	"github.com/watertrack/jjmd/pkg/config"
	"github.com/watertrack/jjmd/pkg/dashboard"
	"github.com/watertrack/jjmd/pkg/db"
	"github.com/watertrack/jjmd/pkg/schema"
)

// Bootstrap credentials created by EnsureDefaultAdmin on first run.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// authenticator implements dashboard.Authenticator.
type authenticator struct {
	operator db.Operator
	salt     string
}

// NewAuthenticator creates an Authenticator using the configured
// password salt.
func NewAuthenticator(op db.Operator, cfg *config.AuthConfig) dashboard.Authenticator {
	return &authenticator{operator: op, salt: cfg.PasswordSalt}
}

// HashPassword returns the hex SHA-256 digest of password+salt.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword reports whether password+salt hashes to hash.
func VerifyPassword(password, salt, hash string) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

// CreateUser registers a new account.
func (a *authenticator) CreateUser(
	ctx context.Context,
	username, password, role string,
) (*dashboard.Outcome, error) {
	gormDB := a.operator.DB()
	if gormDB == nil {
		return nil, iodb.NotConnectedError()
	}

	if username == "" {
		return nil, BadUsernameError()
	}
	if password == "" {
		return nil, BadPasswordError()
	}
	if role != schema.RoleAdmin && role != schema.RoleViewer {
		return nil, BadRoleError(role)
	}

	user := schema.User{
		Username:     username,
		PasswordHash: HashPassword(password, a.salt),
		Role:         role,
	}

	err := gormDB.WithContext(ctx).Create(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, UserConflictError(username)
		}
		return nil, UserWriteError(username, err)
	}

	slog.Info("Created user", "username", username, "role", role)

	return &dashboard.Outcome{
		Message: fmt.Sprintf("User '%s' created successfully.", username),
	}, nil
}

// Authenticate verifies credentials and returns the acting user.
func (a *authenticator) Authenticate(
	ctx context.Context,
	username, password string,
) (*dashboard.Actor, error) {
	gormDB := a.operator.DB()
	if gormDB == nil {
		return nil, iodb.NotConnectedError()
	}

	var user schema.User
	err := gormDB.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Indistinguishable from a bad password, so usernames
			// cannot be probed.
			return nil, BadCredentialsError()
		}
		return nil, UserQueryError(username, err)
	}

	if !VerifyPassword(password, a.salt, user.PasswordHash) {
		return nil, BadCredentialsError()
	}

	return &dashboard.Actor{
		UserID:   user.UserID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// EnsureDefaultAdmin creates the bootstrap admin account if no user
// with that name exists yet.
func (a *authenticator) EnsureDefaultAdmin(ctx context.Context) error {
	gormDB := a.operator.DB()
	if gormDB == nil {
		return iodb.NotConnectedError()
	}

	var count int64
	err := gormDB.WithContext(ctx).
		Model(&schema.User{}).
		Where("username = ?", DefaultAdminUsername).
		Count(&count).Error
	if err != nil {
		return UserQueryError(DefaultAdminUsername, err)
	}
	if count > 0 {
		return nil
	}

	_, err = a.CreateUser(
		ctx, DefaultAdminUsername, DefaultAdminPassword, schema.RoleAdmin,
	)
	if err != nil {
		return err
	}

	slog.Warn("Created default admin account, change its password",
		"username", DefaultAdminUsername)
	return nil
}
