// Package store provides the local key-value persistence for session
// preferences, history, and favorites.
package store

import "context"

// Keys used in the preference store. Values are serialized as text; the
// collections are stored as JSON arrays.
const (
	KeyHistory        = "history"
	KeyFavorites      = "favorites"
	KeyTheme          = "theme"
	KeyLanguage       = "language"
	KeyOnboardingSeen = "onboarding_seen"
)

// KV is the persistence contract. Load reports found=false for a missing
// key; callers treat missing and corrupt values as absent.
type KV interface {
	Load(ctx context.Context, key string) (value string, found bool, err error)
	Save(ctx context.Context, key string, value string) error
}
