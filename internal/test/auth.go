package test

import (
	"context"
	"strings"

	pkgAuth "github.com/polkiloo/paymentqa-dashboard/internal/pkg/auth"
)

const stubHashPrefix = "hash:"

// HasherStub stores passwords as "hash:<password>" unless overridden.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return stubHashPrefix + password, nil
}

func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if strings.TrimPrefix(hash, stubHashPrefix) != password || !strings.HasPrefix(hash, stubHashPrefix) {
		return pkgAuth.ErrPasswordMismatch
	}
	return nil
}

// StrategyStub issues "token" and resolves every token to operator 1 unless overridden.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

func (s StrategyStub) IssueToken(operatorID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(operatorID)
	}
	return "token", nil
}

func (s StrategyStub) ParseToken(token string) (int64, error) {
	return parseWith(s.ParseFn, token, 1, nil)
}

func (s StrategyStub) Name() string {
	if s.NameVal == "" {
		return "stub"
	}
	return s.NameVal
}

// TokenParserStub resolves every token to ID, or fails with Err.
type TokenParserStub struct {
	ID      int64
	Err     error
	ParseFn func(string) (int64, error)
}

func (s TokenParserStub) ParseToken(token string) (int64, error) {
	return parseWith(s.ParseFn, token, s.ID, s.Err)
}

// AuthFacadeStub covers the login and token parts of the admin facade.
type AuthFacadeStub struct {
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, error)
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn == nil {
		return "token", nil
	}
	return s.AuthenticateFn(ctx, login, password)
}

func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	return parseWith(s.ParseFn, token, 1, nil)
}

func parseWith(fn func(string) (int64, error), token string, id int64, err error) (int64, error) {
	switch {
	case fn != nil:
		return fn(token)
	case err != nil:
		return 0, err
	default:
		return id, nil
	}
}

var (
	_ pkgAuth.PasswordHasher = HasherStub{}
	_ pkgAuth.Strategy       = StrategyStub{}
)
