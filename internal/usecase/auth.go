package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/paymentqa-dashboard/internal/domain/errors"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/model"
	"github.com/polkiloo/paymentqa-dashboard/internal/domain/repository"
	pkgAuth "github.com/polkiloo/paymentqa-dashboard/internal/pkg/auth"
)

// AuthUseCase handles operator accounts and token management.
type AuthUseCase struct {
	operators repository.OperatorRepository
	hasher    pkgAuth.PasswordHasher
	tokens    pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(operators repository.OperatorRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{operators: operators, hasher: hasher, tokens: strategy}
}

// EnsureOperator creates the operator unless the login already exists. It reports
// whether an account was created.
func (u *AuthUseCase) EnsureOperator(ctx context.Context, login, password string) (bool, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return false, domainErrors.ErrInvalidCredentials
	}

	_, err := u.operators.GetByLogin(ctx, login)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return false, err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	if _, err := u.operators.Create(ctx, login, hash); err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.Operator, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	op, err := u.operators.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(op.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(op.ID)
	if err != nil {
		return nil, "", err
	}

	return op, token, nil
}

// ParseToken extracts operator ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches operator by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.Operator, error) {
	return u.operators.GetByID(ctx, id)
}
