// Package identifier generates the opaque identifiers attached to every node
// of a template export.
package identifier

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Generator produces identifiers for template nodes.
type Generator interface {
	// Next returns a new 32 character hex identifier. identity describes the
	// node being identified; generators that are not content addressed ignore it.
	Next(identity ...string) string
}

// Random draws every identifier from a fresh UUIDv4.
type Random struct{}

// NewRandom creates a Random generator.
func NewRandom() *Random {
	return &Random{}
}

// Next returns the hex form of a random UUID.
func (Random) Next(...string) string {
	return compact(uuid.New())
}

// Deterministic derives identifiers from node identity, so identical input
// produces identical identifiers across runs.
type Deterministic struct {
	namespace uuid.UUID
}

// NewDeterministic creates a Deterministic generator. Generators with
// different seeds never share identifiers for the same node.
func NewDeterministic(seed string) *Deterministic {
	return &Deterministic{
		namespace: uuid.NewSHA1(uuid.NameSpaceURL, []byte("prometheus2zabbix:"+seed)),
	}
}

// Next returns the hex form of a UUIDv5 over identity.
func (d *Deterministic) Next(identity ...string) string {
	return compact(uuid.NewSHA1(d.namespace, []byte(strings.Join(identity, "\x00"))))
}

func compact(id uuid.UUID) string {
	return hex.EncodeToString(id[:])
}
