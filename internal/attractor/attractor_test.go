package attractor_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractors/internal/attractor"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/source"
)

// drift moves every point by (dt, 2dt, 3dt) regardless of position.
type drift struct{}

func (drift) Derivatives(_, _, _, dt float32) (float32, float32, float32) {
	return dt, 2 * dt, 3 * dt
}

// blowup doubles every coordinate each step.
type blowup struct{}

func (blowup) Derivatives(x, y, z, _ float32) (float32, float32, float32) {
	return x, y, z
}

func pt(x, y, z float32) dynamo.Point { return dynamo.Point{X: x, Y: y, Z: z} }

var _ = Describe("Attractor", func() {
	Describe("construction", func() {
		It("uses 100 trajectories with 100-point trails by default", func() {
			a, err := attractor.New(physics.NewRossler(), source.NewUniform(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Len()).To(Equal(100))
			Expect(a.TrailLength()).To(Equal(100))
			Expect(a.Ticks()).To(BeZero())
		})

		It("draws initial points from the default cube", func() {
			a, err := attractor.New(physics.NewLorenz(), source.NewUniform(3), attractor.WithTrajectories(200))
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < a.Len(); i++ {
				p := a.Current(i)
				for _, v := range []float32{p.X, p.Y, p.Z} {
					Expect(v).To(BeNumerically(">=", source.DefaultMin))
					Expect(v).To(BeNumerically("<=", source.DefaultMax))
				}
			}
		})

		It("pre-fills each trail with its own initial point", func() {
			src := source.NewFixed(pt(1, 2, 3), pt(-4, 5, -6))
			a, err := attractor.New(drift{}, src, attractor.WithTrajectories(2), attractor.WithTrailLength(4))
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Trail(0).Points).To(Equal([]dynamo.Point{pt(1, 2, 3), pt(1, 2, 3), pt(1, 2, 3), pt(1, 2, 3)}))
			Expect(a.Trail(1).Points).To(HaveLen(4))
			for _, p := range a.Trail(1).Points {
				Expect(p).To(Equal(pt(-4, 5, -6)))
			}
		})

		DescribeTable("rejects empty shapes",
			func(opts []attractor.Option, field string) {
				_, err := attractor.New(drift{}, source.NewUniform(1), opts...)
				Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())
				var ce *dynamo.ConfigError
				Expect(errors.As(err, &ce)).To(BeTrue())
				Expect(ce.Field).To(Equal(field))
			},
			Entry("zero trajectories", []attractor.Option{attractor.WithTrajectories(0)}, "trajectories"),
			Entry("negative trajectories", []attractor.Option{attractor.WithTrajectories(-1)}, "trajectories"),
			Entry("zero trail", []attractor.Option{attractor.WithTrailLength(0)}, "trail_length"),
			Entry("negative trail", []attractor.Option{attractor.WithTrailLength(-2)}, "trail_length"),
		)

		It("requires dynamics and a source", func() {
			_, err := attractor.New(nil, source.NewUniform(1))
			Expect(err).To(MatchError(dynamo.ErrNilDynamics))

			_, err = attractor.New(drift{}, nil)
			Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())

			_, err = attractor.NewFromPoints(drift{}, nil)
			Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())
		})
	})

	Describe("Tick", func() {
		It("takes one Lorenz Euler step", func() {
			a, err := attractor.NewFromPoints(physics.NewLorenz(), []dynamo.Point{pt(1, 1, 1)}, attractor.WithTrailLength(3))
			Expect(err).NotTo(HaveOccurred())

			a.Tick(0.01)

			p := a.Current(0)
			Expect(p.X).To(BeNumerically("~", 1.0, 1e-6))
			Expect(p.Y).To(BeNumerically("~", 1.26, 1e-5))
			Expect(p.Z).To(BeNumerically("~", 0.983333, 1e-5))

			trail := a.Trail(0).Points
			Expect(trail[0]).To(Equal(p))
			Expect(trail[1]).To(Equal(pt(1, 1, 1)))
			Expect(trail[2]).To(Equal(pt(1, 1, 1)))
			Expect(a.Ticks()).To(Equal(uint64(1)))
		})

		It("keeps rank r equal to the position r ticks ago", func() {
			a, err := attractor.NewFromPoints(physics.NewHalvorsen(), []dynamo.Point{pt(-1, 0.5, 0.2)}, attractor.WithTrailLength(8))
			Expect(err).NotTo(HaveOccurred())

			history := []dynamo.Point{a.Current(0)}
			for i := 0; i < 20; i++ {
				a.Tick(0.005)
				history = append(history, a.Current(0))
			}

			trail := a.Trail(0).Points
			for r := range trail {
				Expect(trail[r]).To(Equal(history[len(history)-1-r]), "rank %d", r)
			}
		})

		It("evolves trajectories independently", func() {
			shared := pt(0.1, 0.2, 0.3)
			run := func(other dynamo.Point) []dynamo.Point {
				a, err := attractor.NewFromPoints(physics.NewThomas(), []dynamo.Point{shared, other}, attractor.WithTrailLength(16))
				Expect(err).NotTo(HaveOccurred())
				for i := 0; i < 500; i++ {
					a.Tick(0.01)
				}
				return a.Trail(0).Points
			}

			Expect(run(pt(5, 5, 5))).To(Equal(run(pt(-3, 2, -1))))
		})

		It("is deterministic for equal seeds and step sequences", func() {
			steps := []float32{0.001, 0.002, 0.005, 0.01, 0.003}
			run := func() []attractor.Trail {
				a, err := attractor.New(physics.NewAizawa(), source.NewUniform(99),
					attractor.WithTrajectories(20), attractor.WithTrailLength(10), attractor.WithBounds(-1, 1))
				Expect(err).NotTo(HaveOccurred())
				for i := 0; i < 200; i++ {
					a.Tick(steps[i%len(steps)])
				}
				return a.Trails()
			}

			Expect(run()).To(Equal(run()))
		})

		It("matches the sequential result when run in parallel", func() {
			build := func(opts ...attractor.Option) *attractor.Attractor {
				opts = append(opts, attractor.WithTrajectories(300), attractor.WithTrailLength(12), attractor.WithBounds(-1, 1))
				a, err := attractor.New(physics.NewLorenz(), source.NewUniform(5), opts...)
				Expect(err).NotTo(HaveOccurred())
				return a
			}
			seq, par := build(), build(attractor.WithParallel(4))
			for i := 0; i < 100; i++ {
				seq.Tick(0.002)
				par.Tick(0.002)
			}

			Expect(par.Trails()).To(Equal(seq.Trails()))
		})

		It("lets divergent coordinates propagate", func() {
			a, err := attractor.NewFromPoints(blowup{}, []dynamo.Point{pt(1, 1, 1)}, attractor.WithTrailLength(2))
			Expect(err).NotTo(HaveOccurred())

			Expect(func() {
				for i := 0; i < 300; i++ {
					a.Tick(1)
				}
			}).NotTo(Panic())
			Expect(math.IsInf(float64(a.Current(0).X), 1)).To(BeTrue())
			Expect(a.Current(0).IsFinite()).To(BeFalse())
		})
	})

	Describe("Reset", func() {
		It("re-seeds inside the new cube and discards history", func() {
			a, err := attractor.New(physics.NewLorenz(), source.NewUniform(11), attractor.WithTrajectories(50), attractor.WithTrailLength(6))
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 30; i++ {
				a.Tick(0.01)
			}

			a.Reset(-1, 1)

			Expect(a.Len()).To(Equal(50))
			Expect(a.TrailLength()).To(Equal(6))
			for _, tr := range a.Trails() {
				cur := a.Current(tr.Index)
				for _, v := range []float32{cur.X, cur.Y, cur.Z} {
					Expect(v).To(BeNumerically(">=", -1))
					Expect(v).To(BeNumerically("<=", 1))
				}
				for _, p := range tr.Points {
					Expect(p).To(Equal(cur))
				}
			}
		})

		It("accepts reversed bounds", func() {
			a, err := attractor.New(drift{}, source.NewUniform(2), attractor.WithTrajectories(10))
			Expect(err).NotTo(HaveOccurred())
			a.Reset(2, -2)
			for i := 0; i < a.Len(); i++ {
				Expect(a.Current(i).X).To(BeNumerically("~", 0, 2))
			}
		})
	})

	Describe("Trails", func() {
		It("returns equal results when queried twice without a tick", func() {
			a, err := attractor.New(physics.NewChen(), source.NewUniform(8), attractor.WithTrajectories(5), attractor.WithTrailLength(7), attractor.WithBounds(-1, 1))
			Expect(err).NotTo(HaveOccurred())
			a.Tick(0.001)
			a.Tick(0.001)

			first := a.Trails()
			second := a.Trails()
			Expect(second).To(Equal(first))
			Expect(first).To(HaveLen(5))
			for i, tr := range first {
				Expect(tr.Index).To(Equal(i))
				Expect(tr.Points).To(HaveLen(7))
			}
		})

		It("does not expose internal storage", func() {
			a, err := attractor.NewFromPoints(drift{}, []dynamo.Point{pt(0, 0, 0)}, attractor.WithTrailLength(3))
			Expect(err).NotTo(HaveOccurred())
			tr := a.Trail(0)
			tr.Points[0] = pt(9, 9, 9)
			Expect(a.Trail(0).Points[0]).To(Equal(pt(0, 0, 0)))
		})

		It("reuses caller storage through TrailInto", func() {
			a, err := attractor.NewFromPoints(drift{}, []dynamo.Point{pt(0, 0, 0)}, attractor.WithTrailLength(3))
			Expect(err).NotTo(HaveOccurred())
			a.Tick(1)

			buf := make([]dynamo.Point, 0, 3)
			buf = a.TrailInto(0, buf[:0])
			Expect(buf).To(Equal([]dynamo.Point{pt(1, 2, 3), pt(0, 0, 0), pt(0, 0, 0)}))
		})
	})
})
