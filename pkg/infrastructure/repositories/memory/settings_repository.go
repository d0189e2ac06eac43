package memory

import (
	"context"

	"github.com/mdlane/campstock/pkg/domain/repositories"
)

// SettingsRepository is an in-memory string key-value store.
type SettingsRepository struct {
	values map[string]string
}

// NewSettingsRepository creates an empty in-memory settings store.
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{values: make(map[string]string)}
}

// Verify interface compliance
var _ repositories.SettingsRepository = (*SettingsRepository)(nil)

// Get returns the value for key and whether it was present.
func (r *SettingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := r.values[key]
	return v, ok, nil
}

// Set stores the value for key, replacing any previous value.
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	r.values[key] = value
	return nil
}

// Delete removes the key if present.
func (r *SettingsRepository) Delete(ctx context.Context, key string) error {
	delete(r.values, key)
	return nil
}
