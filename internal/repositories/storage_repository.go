package repositories

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key is absent.
var ErrKeyNotFound = errors.New("storage: key not found")

// Durable keys shared with the web console. Names must stay byte-for-byte identical.
const (
	KeyToken       = "token"
	KeyUser        = "user"
	KeyPermissions = "permissions"
	KeyIsLoggedIn  = "isLoggedIn"
	KeyUserEmail   = "userEmail"
	KeyUserRole    = "userRole"
	KeyUserID      = "userId"
	KeyTokenCookie = "cookie:token"
)

// SessionKeys lists every key owned by a session.
var SessionKeys = []string{
	KeyToken,
	KeyUser,
	KeyPermissions,
	KeyIsLoggedIn,
	KeyUserEmail,
	KeyUserRole,
	KeyUserID,
	KeyTokenCookie,
}

// StorageRepositoryInterface is durable client-side key/value storage.
type StorageRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Del(ctx context.Context, keys ...string) error
}
