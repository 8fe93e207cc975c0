// Package animate produces frame-by-frame light positions for rendering
// short sequences.
package animate

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/raytrace/pkg/math3d"
)

// SpringAxis follows a target value with spring physics.
type SpringAxis struct {
	Position float64
	Velocity float64
	spring   harmonica.Spring
}

// NewSpringAxis creates an axis at rest at start.
func NewSpringAxis(start float64, fps int, frequency, damping float64) SpringAxis {
	return SpringAxis{
		Position: start,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// Step advances one frame toward target.
func (a *SpringAxis) Step(target float64) {
	a.Position, a.Velocity = a.spring.Update(a.Position, a.Velocity, target)
}

// LightSweep moves a point from From toward To, one frame at a time.
type LightSweep struct {
	From, To math3d.Vec3
	x, y, z  SpringAxis
}

// NewLightSweep creates a sweep at From. Frequency 4.0 with damping 1.0
// (critically damped) eases in and settles on To without overshoot.
func NewLightSweep(from, to math3d.Vec3, fps int) *LightSweep {
	const frequency, damping = 4.0, 1.0
	return &LightSweep{
		From: from,
		To:   to,
		x:    NewSpringAxis(from.X, fps, frequency, damping),
		y:    NewSpringAxis(from.Y, fps, frequency, damping),
		z:    NewSpringAxis(from.Z, fps, frequency, damping),
	}
}

// Position returns the current position.
func (s *LightSweep) Position() math3d.Vec3 {
	return math3d.V3(s.x.Position, s.y.Position, s.z.Position)
}

// Step advances one frame and returns the new position.
func (s *LightSweep) Step() math3d.Vec3 {
	s.x.Step(s.To.X)
	s.y.Step(s.To.Y)
	s.z.Step(s.To.Z)
	return s.Position()
}

// Path returns frames positions, the first being the current one.
func (s *LightSweep) Path(frames int) []math3d.Vec3 {
	if frames <= 0 {
		return nil
	}
	path := make([]math3d.Vec3, 0, frames)
	path = append(path, s.Position())
	for len(path) < frames {
		path = append(path, s.Step())
	}
	return path
}
