package id

import (
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues time-ordered UUIDv7 strings so new rows sort by
// creation in indexes.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", crerr.Wrap(err, "generate uuid v7")
	}
	return v.String(), nil
}

const inviteCodeLength = 8

// NewInviteCode returns an upper-case code users can type to join a league.
func NewInviteCode() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", crerr.Wrap(err, "generate invite code")
	}
	code := strings.ReplaceAll(v.String(), "-", "")
	return strings.ToUpper(code[:inviteCodeLength]), nil
}
