package match

import (
	"math/rand"
	"sort"

	"github.com/Faultbox/tower-crash/internal/tower"
)

// Dispenser hands out the next ball of a round.
type Dispenser struct {
	rng           *rand.Rand
	multiChance   float64
	twoToneChance float64
	twoTone       int
	twoToneLeft   int
}

// NewDispenser creates a dispenser. multiChance and twoToneChance are the
// independent probabilities of a multi and a two-tone ball; at most
// twoTonePerRound two-tone balls appear per round.
func NewDispenser(rng *rand.Rand, multiChance, twoToneChance float64, twoTonePerRound int) *Dispenser {
	return &Dispenser{
		rng:           rng,
		multiChance:   multiChance,
		twoToneChance: twoToneChance,
		twoTone:       twoTonePerRound,
		twoToneLeft:   twoTonePerRound,
	}
}

// Reset restores the per-round allowances.
func (d *Dispenser) Reset() {
	d.twoToneLeft = d.twoTone
}

// Next returns a ball for the tower's current state. Normal balls only take
// colors still present among active blocks, when there are any.
func (d *Dispenser) Next(t *tower.Tower) Ball {
	r := d.rng.Float64()
	switch {
	case r < d.multiChance:
		return Ball{Kind: Multi, Color: tower.RandomColor(d.rng)}
	case d.twoToneLeft > 0 && r < d.multiChance+d.twoToneChance:
		d.twoToneLeft--
		return Ball{Kind: TwoTone, Color: tower.RandomColor(d.rng)}
	}

	present := ActiveColors(t)
	if len(present) == 0 {
		return Ball{Kind: Normal, Color: tower.RandomColor(d.rng)}
	}
	return Ball{Kind: Normal, Color: present[d.rng.Intn(len(present))]}
}

// ActiveColors lists the distinct colors of active blocks in palette order.
func ActiveColors(t *tower.Tower) []tower.Color {
	seen := make(map[tower.Color]bool)
	for _, b := range t.JudgeColors(func(tower.Color) bool { return true }) {
		seen[b.Color] = true
	}
	out := make([]tower.Color, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
