package sessionstore

import "context"

// KeyGuestCartID is the fixed name the guest cart identifier is stored under.
const KeyGuestCartID = "guest_cart_id"

// Store persists the guest cart identifier. The value is opaque to every
// caller except the session resolver.
type Store interface {
	// Get returns the persisted value and whether one exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value.
	Set(ctx context.Context, key, value string) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
