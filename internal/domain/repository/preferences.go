package repository

import (
	"context"

	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// PreferencesRepository stores per-operator view settings.
type PreferencesRepository interface {
	Get(ctx context.Context, operatorID int64) (*model.Preferences, error)
	Save(ctx context.Context, prefs model.Preferences) error
	Delete(ctx context.Context, operatorID int64) error
}
