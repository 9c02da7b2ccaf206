package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	domainErrors "github.com/polkiloo/paymentqa-dashboard/internal/domain/errors"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/repository"
)

// PreferencesUseCase stores the list and metrics settings of operators.
type PreferencesUseCase struct {
	prefs repository.PreferencesRepository
}

// NewPreferencesUseCase constructs PreferencesUseCase.
func NewPreferencesUseCase(prefs repository.PreferencesRepository) *PreferencesUseCase {
	return &PreferencesUseCase{prefs: prefs}
}

// Get returns the saved settings, or the defaults when nothing was saved.
func (u *PreferencesUseCase) Get(ctx context.Context, operatorID int64) (model.Preferences, error) {
	p, err := u.prefs.Get(ctx, operatorID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return model.DefaultPreferences(operatorID), nil
		}
		return model.Preferences{}, err
	}
	return *p, nil
}

// Save validates and stores settings.
func (u *PreferencesUseCase) Save(ctx context.Context, p model.Preferences) (model.Preferences, error) {
	if p.PageSize == 0 {
		p.PageSize = model.DefaultPageSize
	}
	if !slices.Contains(model.PageSizes, p.PageSize) {
		return model.Preferences{}, fmt.Errorf("%w: page size %d", domainErrors.ErrInvalidFilter, p.PageSize)
	}
	if p.Filters.Period == "" {
		p.Filters.Period = model.Period30Days
	}
	if !p.Filters.Period.Valid() {
		return model.Preferences{}, fmt.Errorf("%w: period %q", domainErrors.ErrInvalidFilter, p.Filters.Period)
	}
	if p.Filters.Package == "" {
		p.Filters.Package = model.PackageAll
	}
	if err := u.prefs.Save(ctx, p); err != nil {
		return model.Preferences{}, err
	}
	return p, nil
}

// Reset removes saved settings so the defaults apply again.
func (u *PreferencesUseCase) Reset(ctx context.Context, operatorID int64) error {
	err := u.prefs.Delete(ctx, operatorID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return err
	}
	return nil
}
