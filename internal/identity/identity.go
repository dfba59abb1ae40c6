// Package identity hands out anonymous display names and colors to new connections.
package identity

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// highest numeric suffix appended to a palette name
const maxSuffix = 1000

// a palette entry: the name root and its display color
type Swatch struct {
	Name string
	Hex  string
}

// the identity given to a connection
type Identity struct {
	Name  string
	Color string
}

// allocates identities; implementations must not touch chat state
type Allocator interface {
	Allocate() Identity
}

var DefaultPalette = []Swatch{
	{"Red", "#e74c3c"},
	{"Blue", "#3498db"},
	{"Green", "#27ae60"},
	{"Orange", "#f39c12"},
	{"Pink", "#e91e63"},
	{"Cyan", "#1abc9c"},
	{"Violet", "#9b59b6"},
	{"Gold", "#f1c40f"},
	{"Coral", "#ff7675"},
	{"Lime", "#00b894"},
	{"Indigo", "#6c5ce7"},
	{"Crimson", "#d63031"},
	{"Azure", "#74b9ff"},
	{"Emerald", "#00cec9"},
	{"Ruby", "#fd79a8"},
	{"Sapphire", "#0984e3"},
}

// picks a random swatch and a random suffix in [1, 1000].
// names may collide between live connections.
type RandomAllocator struct {
	palette []Swatch
	mu      sync.Mutex
	rng     *rand.Rand
}

func NewRandomAllocator(palette []Swatch, rng *rand.Rand) *RandomAllocator {
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // display names, not secrets
	}

	return &RandomAllocator{palette: palette, rng: rng}
}

func (a *RandomAllocator) Allocate() Identity {
	a.mu.Lock()
	swatch := a.palette[a.rng.IntN(len(a.palette))]
	suffix := a.rng.IntN(maxSuffix) + 1
	a.mu.Unlock()

	return Identity{
		Name:  fmt.Sprintf("%s%d", swatch.Name, suffix),
		Color: swatch.Hex,
	}
}
