package repositories

import "context"

// SettingsRepository is a plain string key to JSON-serialized value
// store, used for filter state, selection sets and the summary
// collection. Values only need to round-trip through JSON.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
