package scoring

import "math"

// DefaultToleranceFactor is the fraction of a range's width treated as a soft
// margin outside the optimal band before a Range-type score drops to zero.
const DefaultToleranceFactor = 0.2

// ScoreAtOrBelow scores a lower-is-better metric (resting HR, body weight).
// 100 at or below target, 0 at or beyond max, linear in between. A zero-width
// band (max <= target) saturates: at-or-below target is 100, everything else 0.
func ScoreAtOrBelow(actual, target, max float64) float64 {
	if actual <= target {
		return 100
	}
	if actual >= max {
		return 0
	}
	// target < actual < max implies max > target, so the denominator is safe.
	return (max - actual) / (max - target) * 100
}

// ScoreAtOrAbove scores a higher-is-better metric (steps, sleep hours, HRV).
// 100 at or above target, 0 at or below min, linear in between.
func ScoreAtOrAbove(actual, target, min float64) float64 {
	if actual >= target {
		return 100
	}
	if actual <= min {
		return 0
	}
	return (actual - min) / (target - min) * 100
}

// ScoreRange scores an optimal-band metric (body fat %, blood glucose).
// 100 inside [min, max]; outside, the score decays linearly across a margin
// of toleranceFactor*(max-min) and is 0 beyond it. A non-positive tolerance
// makes the band strict.
func ScoreRange(actual, min, max, toleranceFactor float64) float64 {
	if actual >= min && actual <= max {
		return 100
	}

	distance := actual - max
	if actual < min {
		distance = min - actual
	}

	tolerance := (max - min) * toleranceFactor
	if tolerance <= 0 || distance >= tolerance {
		return 0
	}
	return (tolerance - distance) / tolerance * 100
}

// WeightedComponent is one (score, weight) observation that was actually
// present for an aggregation.
type WeightedComponent struct {
	Score  float64
	Weight float64
}

// WeightedMean renormalizes over the components given: absent items are
// simply not passed in, so their weights never pad the denominator. Zero
// total weight yields 0.
func WeightedMean(components []WeightedComponent) float64 {
	var totalWeight, weightedSum float64
	for _, c := range components {
		totalWeight += c.Weight
		weightedSum += c.Score * c.Weight
	}
	if totalWeight <= 0 {
		return 0
	}
	return weightedSum / totalWeight
}

// Round2 rounds to two decimal places, the precision every persisted score
// and the user-facing display agree on.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
