package auth

import "time"

// Strategy issues and verifies customer bearer tokens.
type Strategy interface {
	IssueToken(customerID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes token strategies.
type Options struct {
	TTL time.Duration
	Now func() time.Time
}
