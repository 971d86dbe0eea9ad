package game

import (
	"math/rand"

	"github.com/Faultbox/tower-crash/internal/match"
	"github.com/Faultbox/tower-crash/internal/tower"
)

// AutoPlayer produces input for headless rounds: it clicks an active block,
// preferring one the current ball can clear, and releases on the next frame.
type AutoPlayer struct {
	rng     *rand.Rand
	pressed bool
}

// NewAutoPlayer creates a player using rng for target choice.
func NewAutoPlayer(rng *rand.Rand) *AutoPlayer {
	return &AutoPlayer{rng: rng}
}

// Next returns the input for the coming frame.
func (a *AutoPlayer) Next(s *Session) Input {
	if a.pressed || s.Over() || s.Throwing() {
		released := a.pressed
		a.pressed = false
		return Input{Released: released}
	}

	target := a.target(s)
	if target == nil {
		return Input{}
	}
	from := s.Camera().Pos
	to := from.Add(target.Pos.Sub(from).Scale(1.5))
	a.pressed = true
	return Input{Pressed: true, From: from, To: to}
}

func (a *AutoPlayer) target(s *Session) *tower.Block {
	ball := s.Ball()
	var candidates []*tower.Block
	if ball.Kind == match.Normal {
		candidates = s.Tower().JudgeColors(func(c tower.Color) bool { return c == ball.Color })
	}
	if len(candidates) == 0 {
		candidates = s.Tower().JudgeColors(func(tower.Color) bool { return true })
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[a.rng.Intn(len(candidates))]
}
