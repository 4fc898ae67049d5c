// Package authnum issues payment authorization numbers.
package authnum

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/polkiloo/orderflow/internal/domain/model"
)

// Module provides the default issuer.
var Module = fx.Provide(func() model.AuthorizationIssuer { return NewUUIDIssuer() })

// UUIDIssuer issues time-ordered UUIDv7 strings. Uniqueness does not depend on clock resolution.
type UUIDIssuer struct {
	newID func() (uuid.UUID, error)
}

// NewUUIDIssuer constructs UUIDIssuer.
func NewUUIDIssuer() *UUIDIssuer {
	return &UUIDIssuer{newID: uuid.NewV7}
}

// Next returns a fresh authorization number.
func (i *UUIDIssuer) Next() string {
	id, err := i.newID()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return id.String()
}

// SequenceIssuer issues increasing decimal numbers starting after the seed.
type SequenceIssuer struct {
	last atomic.Uint64
}

// NewSequenceIssuer constructs SequenceIssuer.
func NewSequenceIssuer(seed uint64) *SequenceIssuer {
	s := &SequenceIssuer{}
	s.last.Store(seed)
	return s
}

// Next returns the next number of the sequence.
func (s *SequenceIssuer) Next() string {
	return strconv.FormatUint(s.last.Add(1), 10)
}
