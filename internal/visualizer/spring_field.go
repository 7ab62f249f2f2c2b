package visualizer

import "github.com/charmbracelet/harmonica"

// springField eases a row of values towards their targets, one spring per
// value sharing the same tuning.
type springField struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newSpringField(fps int, frequency, damping float64) springField {
	return springField{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// resize keeps the values that survive and starts new ones at rest at zero.
func (s *springField) resize(n int) {
	switch {
	case len(s.pos) == n:
		return
	case len(s.pos) > n:
		s.pos, s.vel = s.pos[:n], s.vel[:n]
	default:
		s.pos = append(s.pos, make([]float64, n-len(s.pos))...)
		s.vel = append(s.vel, make([]float64, n-len(s.vel))...)
	}
}

func (s *springField) step(i int, target float64) float64 {
	s.pos[i], s.vel[i] = s.spring.Update(s.pos[i], s.vel[i], target)
	return s.pos[i]
}
