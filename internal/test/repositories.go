package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/paymentqa-dashboard/internal/domain/errors"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
)

// OperatorRepositoryStub stores operators in-memory for tests.
type OperatorRepositoryStub struct {
	Operators map[string]*model.Operator
	ByID      map[int64]*model.Operator
	Next      int64
	Err       error
	CreateErr error
}

// NewOperatorRepositoryStub constructs stub repository with initialized maps.
func NewOperatorRepositoryStub() *OperatorRepositoryStub {
	return &OperatorRepositoryStub{
		Operators: make(map[string]*model.Operator),
		ByID:      make(map[int64]*model.Operator),
		Next:      1,
	}
}

// Create registers operator unless already exists or stub has explicit error.
func (s *OperatorRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.Operator, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	if s.Operators == nil {
		s.Operators = make(map[string]*model.Operator)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.Operator)
	}
	if _, exists := s.Operators[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	op := &model.Operator{ID: s.Next, Login: login, PasswordHash: passwordHash, CreatedAt: time.Unix(0, 0)}
	s.Next++
	s.Operators[login] = op
	s.ByID[op.ID] = op
	return op, nil
}

// GetByLogin fetches operator by login or returns not found.
func (s *OperatorRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Operator, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if op, ok := s.Operators[login]; ok {
		return op, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches operator by identifier or returns not found.
func (s *OperatorRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Operator, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if op, ok := s.ByID[id]; ok {
		return op, nil
	}
	return nil, domainErrors.ErrNotFound
}

// PreferencesRepositoryStub keeps preferences per operator in memory.
type PreferencesRepositoryStub struct {
	mu      sync.Mutex
	Items   map[int64]model.Preferences
	Err     error
	Saved   []model.Preferences
	Deleted []int64
}

// NewPreferencesRepositoryStub constructs an empty stub.
func NewPreferencesRepositoryStub() *PreferencesRepositoryStub {
	return &PreferencesRepositoryStub{Items: make(map[int64]model.Preferences)}
}

// Get returns stored preferences or not found.
func (s *PreferencesRepositoryStub) Get(ctx context.Context, operatorID int64) (*model.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Items[operatorID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

// Save records and stores preferences.
func (s *PreferencesRepositoryStub) Save(ctx context.Context, prefs model.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.Items == nil {
		s.Items = make(map[int64]model.Preferences)
	}
	s.Items[prefs.OperatorID] = prefs
	s.Saved = append(s.Saved, prefs)
	return nil
}

// Delete removes stored preferences or returns not found.
func (s *PreferencesRepositoryStub) Delete(ctx context.Context, operatorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Deleted = append(s.Deleted, operatorID)
	if _, ok := s.Items[operatorID]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Items, operatorID)
	return nil
}
