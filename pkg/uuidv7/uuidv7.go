// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package uuidv7 generates time-ordered UUIDv7 identifiers by local bit
// composition: 48-bit millisecond unix timestamp, version nibble, 12 random
// bits, variant bits, 62 random bits.
package uuidv7

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/google/uuid"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Option configures a Generator
type Option func(*Generator)

// WithClock overrides the wall clock (for deterministic tests)
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithEntropy overrides the entropy source (for deterministic tests)
func WithEntropy(r io.Reader) Option {
	return func(g *Generator) {
		g.entropy = r
	}
}

// 🏭 Generator produces UUIDv7 strings from a clock and an entropy source
type Generator struct {
	now     func() time.Time
	entropy io.Reader
}

// New creates a Generator backed by time.Now and crypto/rand
func New(opts ...Option) *Generator {
	g := &Generator{
		now:     time.Now,
		entropy: rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// 🎲 NewString generates a fresh UUIDv7 in canonical 8-4-4-4-12 form.
// Values are never reused across calls.
func (g *Generator) NewString() (string, error) {
	var u uuid.UUID

	// rand_a (12 bits) lives in bytes 6-7, rand_b (62 bits) in bytes 8-15.
	if _, err := io.ReadFull(g.entropy, u[6:]); err != nil {
		return "", errors.Errorf("reading entropy: %w", err)
	}

	ms := uint64(g.now().UnixMilli()) & ((1 << 48) - 1)
	u[0] = byte(ms >> 40)
	u[1] = byte(ms >> 32)
	u[2] = byte(ms >> 24)
	u[3] = byte(ms >> 16)
	u[4] = byte(ms >> 8)
	u[5] = byte(ms)

	u[6] = 0x70 | (u[6] & 0x0f) // version 7
	u[8] = 0x80 | (u[8] & 0x3f) // variant 10

	return u.String(), nil
}
