package auth

import "time"

// Strategy issues and verifies operator session tokens. ParseToken reports
// ErrInvalidToken for anything it did not issue or that has expired.
type Strategy interface {
	IssueToken(operatorID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tune a Strategy. A zero TTL selects the strategy default.
type Options struct {
	TTL time.Duration
}
