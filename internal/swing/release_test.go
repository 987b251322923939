package swing

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/golfsim/internal/projectile"
)

var _ = Describe("Simulator", func() {
	var sim *Simulator

	BeforeEach(func() {
		sim = New()
	})

	Context("with every segment at rest and no drive", func() {
		It("releases a single ball that goes nowhere", func() {
			p := Parameters{Rc: 1, Dt: 0.01, SimulationTime: 2.0}

			result, err := sim.Run(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Trajectory).To(Equal([]projectile.Point{{Range: 0, MaxHeight: 0}}))
		})
	})

	Context("with the reference swing", func() {
		var (
			p      Parameters
			result *Result
		)

		BeforeEach(func() {
			p = ReferenceParameters()
			var err error
			result, err = sim.Run(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())
		})

		It("emits exactly one trajectory point", func() {
			Expect(result.Trajectory).To(HaveLen(1))
			Expect(result.Releases).To(HaveLen(1))
		})

		It("releases on the last iteration of the window", func() {
			rel, ok := result.LastRelease()
			Expect(ok).To(BeTrue())
			Expect(rel.Step).To(Equal(result.Steps - 1))
			Expect(rel.Time).To(BeNumerically("<=", p.SimulationTime))
			Expect(rel.Time + p.Dt).To(BeNumerically(">", p.SimulationTime))
		})

		It("matches the closed-form kinematics at the captured release time", func() {
			rel, _ := result.LastRelease()
			tc := float64(result.Steps) * p.Dt
			Expect(rel.Elapsed).To(BeNumerically("~", tc, 1e-12))

			alphaSum := p.Hip.Alpha + p.Shoulder.Alpha + p.Arm.Alpha
			wantAngle := 0.5 * alphaSum * tc * tc
			wantSpeed := alphaSum * tc * p.Rc

			Expect(rel.LaunchAngle).To(BeNumerically("~", wantAngle, 1e-9))
			Expect(rel.ClubheadSpeed).To(BeNumerically("~", wantSpeed, 1e-9))

			for _, seg := range Segments {
				alpha := p.Segment(seg).Alpha
				Expect(rel.State.Theta[seg]).To(BeNumerically("~", 0.5*alpha*tc*tc, 1e-9))
				Expect(rel.State.Omega[seg]).To(BeNumerically("~", alpha*tc, 1e-9))
			}

			want := projectile.Evaluate(wantSpeed*math.Cos(wantAngle), wantSpeed*math.Sin(wantAngle))
			Expect(result.Trajectory[0].Range).To(BeNumerically("~", want.Range, 1e-6))
			Expect(result.Trajectory[0].MaxHeight).To(BeNumerically("~", want.MaxHeight, 1e-6))
		})

		It("is deterministic across runs", func() {
			again, err := New().Run(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Trajectory).To(Equal(result.Trajectory))
			Expect(again.Releases).To(Equal(result.Releases))
		})
	})

	Context("when rc grows", func() {
		It("strictly increases clubhead speed, range magnitude and height", func() {
			// releases at 0.78 rad, an upward launch
			p := Parameters{Arm: SegmentParams{Alpha: 1}, Rc: 1, Dt: 0.25, SimulationTime: 1.0}
			small, err := sim.Run(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())

			p.Rc = 1.5
			large, err := New().Run(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())

			s, _ := small.LastRelease()
			l, _ := large.LastRelease()
			Expect(s.Vy).To(BeNumerically(">", 0))
			Expect(math.Abs(l.ClubheadSpeed)).To(BeNumerically(">", math.Abs(s.ClubheadSpeed)))
			Expect(math.Abs(large.Trajectory[0].Range)).To(BeNumerically(">", math.Abs(small.Trajectory[0].Range)))
			Expect(large.Trajectory[0].MaxHeight).To(BeNumerically(">", small.Trajectory[0].MaxHeight))
		})
	})

	DescribeTable("release count at the window boundary",
		func(dt, window float64) {
			p := Parameters{Arm: SegmentParams{Alpha: 3}, Rc: 1, Dt: dt, SimulationTime: window}
			result, err := sim.Run(context.Background(), p)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Trajectory).To(HaveLen(1))
		},
		Entry("quarter steps", 0.25, 1.0),
		Entry("half steps", 0.5, 2.0),
		Entry("single step window", 1.0, 1.0),
		Entry("window shorter than dt", 1.0, 0.5),
	)
})
