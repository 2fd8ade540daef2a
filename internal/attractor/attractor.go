package attractor

import (
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/ring"
	"github.com/san-kum/attractors/internal/source"
)

const (
	DefaultTrajectories = 100
	DefaultTrailLength  = 100

	// parallelMinChunk keeps tiny attractors on the calling goroutine.
	parallelMinChunk = 64
)

// Trail is one trajectory's history, Points[0] being the newest position.
type Trail struct {
	Index  int
	Points []dynamo.Point
}

type trajectory struct {
	pos   dynamo.Point
	trail *ring.Buffer[dynamo.Point]
}

type Attractor struct {
	dyn      dynamo.Dynamics
	src      dynamo.PointSource
	trajs    []trajectory
	n        int
	length   int
	min, max float32
	workers  int
	ticks    uint64
}

type Option func(*Attractor)

// WithTrajectories sets N, the number of independent trajectories.
func WithTrajectories(n int) Option {
	return func(a *Attractor) { a.n = n }
}

// WithTrailLength sets L, the history kept per trajectory.
func WithTrailLength(l int) Option {
	return func(a *Attractor) { a.length = l }
}

// WithBounds sets the cube initial points are drawn from.
func WithBounds(min, max float32) Option {
	return func(a *Attractor) { a.min, a.max = min, max }
}

// WithSource sets the point source used by Reset.
func WithSource(src dynamo.PointSource) Option {
	return func(a *Attractor) { a.src = src }
}

// WithParallel spreads Tick across workers goroutines. Zero or one keeps
// ticks sequential.
func WithParallel(workers int) Option {
	return func(a *Attractor) { a.workers = workers }
}

// New builds an attractor whose trajectories start at points drawn from src
// inside the bounding cube, [-20, 20]³ unless WithBounds says otherwise.
func New(dyn dynamo.Dynamics, src dynamo.PointSource, opts ...Option) (*Attractor, error) {
	if src == nil {
		return nil, &dynamo.ConfigError{Field: "source", Value: nil, Reason: "point source required"}
	}
	a, err := build(dyn, append(opts, WithSource(src)))
	if err != nil {
		return nil, err
	}
	for i := range a.trajs {
		a.seed(i, src.Point(a.min, a.max))
	}
	return a, nil
}

// NewFromPoints builds one trajectory per initial point. Later resets draw
// from a uniform source seeded with 0 unless WithSource supplies another.
func NewFromPoints(dyn dynamo.Dynamics, points []dynamo.Point, opts ...Option) (*Attractor, error) {
	opts = append(opts, WithTrajectories(len(points)))
	a, err := build(dyn, opts)
	if err != nil {
		return nil, err
	}
	if a.src == nil {
		a.src = source.NewUniform(0)
	}
	for i, p := range points {
		a.seed(i, p)
	}
	return a, nil
}

func build(dyn dynamo.Dynamics, opts []Option) (*Attractor, error) {
	if dyn == nil {
		return nil, dynamo.ErrNilDynamics
	}
	a := &Attractor{
		dyn:    dyn,
		n:      DefaultTrajectories,
		length: DefaultTrailLength,
		min:    source.DefaultMin,
		max:    source.DefaultMax,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.n < 1 {
		return nil, &dynamo.ConfigError{Field: "trajectories", Value: a.n, Reason: "must be at least 1"}
	}
	if a.length < 1 {
		return nil, &dynamo.ConfigError{Field: "trail_length", Value: a.length, Reason: "must be at least 1"}
	}
	if a.min > a.max {
		a.min, a.max = a.max, a.min
	}
	a.trajs = make([]trajectory, a.n)
	return a, nil
}

func (a *Attractor) seed(i int, p dynamo.Point) {
	t := &a.trajs[i]
	t.pos = p
	if t.trail == nil {
		t.trail = ring.New(a.length, p)
		return
	}
	t.trail.Fill(p)
}

// Reset draws fresh points uniformly in [min, max]³ and discards all
// history. N, L and the dynamics are unchanged.
func (a *Attractor) Reset(min, max float32) {
	if min > max {
		min, max = max, min
	}
	for i := range a.trajs {
		a.seed(i, a.src.Point(min, max))
	}
	a.ticks = 0
}

// Tick advances every trajectory by one Euler step of size dt and records
// the new position. Diverging coordinates are not clamped.
func (a *Attractor) Tick(dt float32) {
	if a.workers > 1 {
		dynamo.ParallelFor(len(a.trajs), parallelMinChunk, a.workers, func(start, end int) {
			a.advance(start, end, dt)
		})
	} else {
		a.advance(0, len(a.trajs), dt)
	}
	a.ticks++
}

func (a *Attractor) advance(start, end int, dt float32) {
	for i := start; i < end; i++ {
		t := &a.trajs[i]
		t.pos = integrators.Euler(a.dyn, t.pos, dt)
		t.trail.Push(t.pos)
	}
}

// Trails returns every trajectory's history in recency order.
func (a *Attractor) Trails() []Trail {
	out := make([]Trail, len(a.trajs))
	for i := range a.trajs {
		out[i] = a.Trail(i)
	}
	return out
}

func (a *Attractor) Trail(i int) Trail {
	return Trail{Index: i, Points: a.TrailInto(i, make([]dynamo.Point, 0, a.length))}
}

// TrailInto appends trajectory i's history to dst, letting renderers reuse
// one slice across frames.
func (a *Attractor) TrailInto(i int, dst []dynamo.Point) []dynamo.Point {
	return a.trajs[i].trail.AppendTo(dst)
}

// Current returns trajectory i's latest position.
func (a *Attractor) Current(i int) dynamo.Point { return a.trajs[i].pos }

func (a *Attractor) Len() int                  { return len(a.trajs) }
func (a *Attractor) TrailLength() int          { return a.length }
func (a *Attractor) Ticks() uint64             { return a.ticks }
func (a *Attractor) Dynamics() dynamo.Dynamics { return a.dyn }
func (a *Attractor) Bounds() (float32, float32) {
	return a.min, a.max
}
