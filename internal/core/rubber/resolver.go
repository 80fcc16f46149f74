package rubber

import "math"

// Input describes one forward move. Hit is the distance to the closest wall
// ahead and only counts when HasHit is set.
type Input struct {
	Desired    float64
	Hit        float64
	HasHit     bool
	Rubber     float64
	Vulnerable bool
	InGrace    bool
}

// Outcome is the resolved move. Travel is never negative and Consumed never
// exceeds the rubber that was available.
type Outcome struct {
	Travel   float64
	Consumed float64
	Grinding bool
	Killed   bool
	// Safe is the distance left before the no-go zone, negative when already inside it.
	Safe float64
}

// Resolve turns a desired forward distance into actual travel, rubber use and death.
func Resolve(cfg Config, in Input) Outcome {
	d := math.Max(0, in.Desired)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		d = 0
	}
	m := cfg.EffectiveMinDistance(in.InGrace)
	rubber := math.Max(0, in.Rubber)

	if !in.HasHit || math.IsNaN(in.Hit) || in.Hit > d+m {
		return Outcome{Travel: d, Safe: math.Inf(1)}
	}

	safe := in.Hit - m
	out := Outcome{Grinding: true, Safe: safe}

	switch {
	case safe < 0:
		if rubber > 0 {
			mult := cfg.CostBlocked
			if in.InGrace {
				mult = cfg.CostBlockedGrace
				out.Travel = d * cfg.GraceMoveFraction
			}
			out.Consumed = math.Min(rubber, -safe*mult)
			return out
		}
		if in.InGrace && cfg.GraceOverridesDeath {
			out.Travel = d * cfg.GraceNoRubberMoveFraction
			return out
		}
		out.Killed = in.Vulnerable
		return out

	case safe < d:
		if rubber > 0 {
			mult := cfg.CostPartial
			if in.InGrace {
				mult = cfg.CostPartialGrace
			}
			out.Consumed = math.Min(rubber, (d-safe)*mult)
			out.Travel = safe
			return out
		}
		// close the remaining gap first; the kill comes once nothing is left
		if safe <= 0 && in.Vulnerable && !(in.InGrace && cfg.GraceOverridesDeath) {
			out.Killed = true
			return out
		}
		out.Travel = math.Max(0, safe)
		return out
	}

	// within reach but the whole step is safe
	out.Travel = d
	return out
}

// DigCost is the surcharge for turning while grinding close to a wall. It is
// zero outside DigRangeFactor times the minimum wall distance.
func DigCost(cfg Config, grinding bool, distanceToWall float64) float64 {
	if !grinding || math.IsNaN(distanceToWall) {
		return 0
	}
	reach := cfg.DigRangeFactor * cfg.MinWallDistance
	if distanceToWall >= reach {
		return 0
	}
	return cfg.DigMultiplier * (reach - math.Max(0, distanceToWall))
}

// Regenerate refills rubber over dt seconds. Grinding cycles do not regenerate.
func Regenerate(cfg Config, rubber, dt float64, grinding bool) float64 {
	if grinding || dt <= 0 {
		return Clamp(cfg, rubber)
	}
	return Clamp(cfg, rubber+cfg.RegenRate*dt)
}

// Clamp bounds rubber to [0, Max].
func Clamp(cfg Config, rubber float64) float64 {
	if math.IsNaN(rubber) {
		return 0
	}
	return math.Max(0, math.Min(cfg.Max, rubber))
}
