// Package swing integrates a three-segment golf swing and derives the launch
// velocity of the ball at release.
//
// The swing is modeled as three independently rotating segments:
//
//   - [Hip]
//   - [Shoulder]
//   - [Arm]
//
// Each segment starts from its own angle and angular velocity and turns under
// a constant angular acceleration. The [Simulator] advances all segments with
// a fixed timestep and, at the release instant, combines them into a launch
// angle and clubhead speed that feed the [projectile] evaluator.
//
// # Example
//
//	sim := swing.New()
//	result, err := sim.Run(ctx, swing.ReferenceParameters())
//	for _, p := range result.Trajectory {
//	    fmt.Println(p.Range, p.MaxHeight)
//	}
//
// # Thread Safety
//
// A Simulator is NOT safe for concurrent Run calls once metrics or observers
// are attached. Create one per goroutine, as the sweep package does.
package swing
