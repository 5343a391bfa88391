// Package flags is the durable key/value boundary holding a device's
// identity record and PIN secret.
package flags

import "context"

// Keys of the two flags a device can hold.
const (
	KeyIdentity = "identity"
	KeyPIN      = "pin"
)

// Store is a present/absent key/value store with no expiry.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
