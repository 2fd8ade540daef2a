// Package source provides initial-condition generators for attractors.
package source

import (
	"sync"

	"golang.org/x/exp/rand"

	"github.com/san-kum/attractors/internal/dynamo"
)

// Default bounding cube for freshly constructed attractors.
const (
	DefaultMin float32 = -20
	DefaultMax float32 = 20
)

// Uniform draws every coordinate uniformly from [min, max).
type Uniform struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniform returns a source seeded with seed. Equal seeds yield equal
// point sequences.
func NewUniform(seed uint64) *Uniform {
	return &Uniform{rng: rand.New(rand.NewSource(seed))}
}

func (u *Uniform) Point(min, max float32) dynamo.Point {
	u.mu.Lock()
	defer u.mu.Unlock()
	return dynamo.Point{X: u.coord(min, max), Y: u.coord(min, max), Z: u.coord(min, max)}
}

func (u *Uniform) coord(min, max float32) float32 {
	return min + (max-min)*u.rng.Float32()
}

// Fixed replays caller supplied points in order, cycling when exhausted.
// Bounds are ignored.
type Fixed struct {
	points []dynamo.Point
	next   int
}

func NewFixed(points ...dynamo.Point) *Fixed {
	return &Fixed{points: points}
}

func (f *Fixed) Point(_, _ float32) dynamo.Point {
	if len(f.points) == 0 {
		return dynamo.Point{}
	}
	p := f.points[f.next%len(f.points)]
	f.next++
	return p
}
