package engine

import (
	"math"
	"math/rand/v2"
	"testing"
)

func testRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeefcafe1234))
}

// TestRouletteFullCylinder verifies a full sweep of one load fires exactly
// one fatal chamber and reports chambers 1 through 6 in order.
func TestRouletteFullCylinder(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		r := NewRoulette(testRng(seed))

		fatals := 0
		for i := 0; i < Chambers; i++ {
			survived, chamber := r.Fire()
			if chamber != i+1 {
				t.Fatalf("seed %d trial %d: chamber = %d, want %d", seed, i, chamber, i+1)
			}
			if !survived {
				fatals++
			}
		}
		if fatals != 1 {
			t.Errorf("seed %d: full cylinder fired %d fatal chambers, want 1", seed, fatals)
		}
		if got := r.ShotsFired(); got != Chambers {
			t.Errorf("seed %d: ShotsFired() = %d, want %d", seed, got, Chambers)
		}
	}
}

// TestRoulettePointerAlwaysAdvances verifies the pointer moves on survived
// and fatal trials alike, wrapping after the last chamber.
func TestRoulettePointerAlwaysAdvances(t *testing.T) {
	r := NewRoulette(testRng(7))
	r.bullet = 2

	want := []int{1, 2, 3, 4, 5, 6, 1, 2}
	for i, w := range want {
		_, chamber := r.Fire()
		if chamber != w {
			t.Errorf("trial %d: chamber = %d, want %d", i, chamber, w)
		}
	}
}

// TestRouletteProbabilities walks one load with the bullet pinned to the
// last chamber and checks the survival odds shrink as (remaining-1)/remaining.
func TestRouletteProbabilities(t *testing.T) {
	r := NewRoulette(testRng(3))
	r.bullet = Chambers - 1

	for fired := 0; fired < Chambers; fired++ {
		remaining := Chambers - fired
		wantSurvival := float64(remaining-1) / float64(remaining)
		if got := r.SurvivalProbability(); math.Abs(got-wantSurvival) > 1e-12 {
			t.Errorf("after %d trials: SurvivalProbability() = %v, want %v", fired, got, wantSurvival)
		}
		if got := r.DeathProbability(); math.Abs(got-(1-wantSurvival)) > 1e-12 {
			t.Errorf("after %d trials: DeathProbability() = %v, want %v", fired, got, 1-wantSurvival)
		}
		r.Fire()
	}
}

// TestRouletteCertainDeath verifies the last remaining chamber reports
// death probability 1.0 and then fires fatal.
func TestRouletteCertainDeath(t *testing.T) {
	r := NewRoulette(testRng(11))
	r.bullet = Chambers - 1

	for i := 0; i < Chambers-1; i++ {
		survived, _ := r.Fire()
		if !survived {
			t.Fatalf("trial %d fired the bullet, want empty chamber", i)
		}
	}
	if got := r.DeathProbability(); got != 1.0 {
		t.Errorf("DeathProbability() with one chamber left = %v, want 1.0", got)
	}
	if survived, _ := r.Fire(); survived {
		t.Error("last chamber survived, want fatal")
	}
}

// TestRouletteDegenerateExhausted verifies the zero-remaining convention:
// survival 0.0, death 1.0, no panic.
func TestRouletteDegenerateExhausted(t *testing.T) {
	r := NewRoulette(testRng(5))
	r.fired = Chambers

	if got := r.SurvivalProbability(); got != 0.0 {
		t.Errorf("SurvivalProbability() exhausted = %v, want 0.0", got)
	}
	if got := r.DeathProbability(); got != 1.0 {
		t.Errorf("DeathProbability() exhausted = %v, want 1.0", got)
	}
}

// TestRouletteReset verifies reset reloads the cylinder: counter zeroed,
// pointer back to the first chamber.
func TestRouletteReset(t *testing.T) {
	r := NewRoulette(testRng(13))
	r.Fire()
	r.Fire()
	r.Fire()

	r.Reset()

	if got := r.ShotsFired(); got != 0 {
		t.Errorf("ShotsFired() after reset = %d, want 0", got)
	}
	if _, chamber := r.Fire(); chamber != 1 {
		t.Errorf("first chamber after reset = %d, want 1", chamber)
	}
}

// TestRouletteBulletPlacement verifies every chamber position gets the
// bullet eventually across reloads.
func TestRouletteBulletPlacement(t *testing.T) {
	r := NewRoulette(testRng(17))

	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		r.Reset()
		if r.bullet < 0 || r.bullet >= Chambers {
			t.Fatalf("bullet position %d out of range", r.bullet)
		}
		seen[r.bullet] = true
	}
	if len(seen) != Chambers {
		t.Errorf("bullet landed in %d distinct chambers over 200 reloads, want %d", len(seen), Chambers)
	}
}
