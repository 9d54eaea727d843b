package engine

import "math/rand/v2"

// Roulette is the elimination trial: a six-chamber revolver loaded with one
// bullet in a secretly fixed, uniformly drawn chamber. Every trial advances
// the chamber pointer by exactly one (wrapping) whatever the outcome, and
// the revolver reloads only after a fatal trial.
type Roulette struct {
	chambers int
	bullet   int // chamber holding the bullet, 0-indexed
	current  int // next chamber to fire, 0-indexed
	fired    int // trials since last reset
	rng      *rand.Rand
}

// NewRoulette returns a loaded revolver drawing its bullet positions from rng.
func NewRoulette(rng *rand.Rand) *Roulette {
	r := &Roulette{chambers: Chambers, rng: rng}
	r.Reset()
	return r
}

// Reset reloads the revolver: a fresh uniformly random bullet position,
// pointer back to the first chamber, trial counter zeroed. Called at
// construction and after every fatal trial.
func (r *Roulette) Reset() {
	r.bullet = r.rng.IntN(r.chambers)
	r.current = 0
	r.fired = 0
}

// Fire runs one trial. It reports whether the victim survived (the current
// chamber was empty) and which chamber fired, as the pre-advance pointer
// position 1-indexed for display. The pointer always advances.
func (r *Roulette) Fire() (survived bool, chamber int) {
	chamber = r.current
	survived = chamber != r.bullet

	r.current = (r.current + 1) % r.chambers
	r.fired++

	return survived, chamber + 1
}

// SurvivalProbability is the chance the next trial fires an empty chamber:
// one of the remaining unfired chambers holds the bullet, so the odds are
// (remaining-1)/remaining. Zero remaining yields 0.0 by convention.
func (r *Roulette) SurvivalProbability() float64 {
	remaining := r.chambers - r.fired
	if remaining <= 0 {
		return 0.0
	}
	return float64(remaining-1) / float64(remaining)
}

// DeathProbability is the complement of SurvivalProbability. The degenerate
// zero-remaining case reports 1.0 rather than failing; with a mandatory
// reset after every fatality it is unreachable in normal play.
func (r *Roulette) DeathProbability() float64 {
	return 1.0 - r.SurvivalProbability()
}

// ShotsFired returns the number of trials since the last reset.
func (r *Roulette) ShotsFired() int { return r.fired }

// Chambers returns the chamber count.
func (r *Roulette) Chambers() int { return r.chambers }
