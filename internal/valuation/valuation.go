// Package valuation derives stats, price and rating from a vehicle design.
// Every function is pure: no state is kept between calls and inputs are never modified.
package valuation

import (
	"errors"
	"fmt"
	"math"

	"github.com/modgarage/customizer/internal/catalog"
	"github.com/modgarage/customizer/pkg/core"
)

var (
	// ErrModelNotFound is returned when a design's base model has no catalog entry.
	ErrModelNotFound = errors.New("vehicle model not found")

	// ErrInvalidDesign is returned when a design field is outside its allowed values.
	ErrInvalidDesign = errors.New("invalid vehicle design")
)

// Pricing constants.
const (
	EngineLevelPrice int64 = 50000
	TurboPrice       int64 = 25000
	SportTransPrice  int64 = 15000
	RaceTransPrice   int64 = 35000
	WheelsPrice      int64 = 10000
	BodyKitPrice     int64 = 50000
)

// referenceWeight is the mass at which the weight factor is 1.
const referenceWeight = 1000.0

type workingStats struct {
	speed, acceleration, braking, handling, weight float64
}

// Stats computes the derived stats vector. Multipliers compound, so the order is fixed:
// engine, turbo, transmission, then the weight factor. Results are rounded half-up
// and never clamped.
func Stats(d core.Design) (core.Stats, error) {
	model, ok := catalog.Model(d.BaseModel)
	if !ok {
		return core.Stats{}, fmt.Errorf("vehicle model %s: %w", d.BaseModel, ErrModelNotFound)
	}
	perf := d.Modifications.Performance
	if err := validatePerformance(perf); err != nil {
		return core.Stats{}, err
	}

	s := workingStats{
		speed:        float64(model.BaseStats.Speed),
		acceleration: float64(model.BaseStats.Acceleration),
		braking:      float64(model.BaseStats.Braking),
		handling:     float64(model.BaseStats.Handling),
		weight:       float64(model.BaseStats.Weight),
	}

	engineMultiplier := 1 + float64(perf.EngineLevel-1)*0.15
	s.speed *= engineMultiplier
	s.acceleration *= engineMultiplier

	if perf.TurboInstalled {
		s.acceleration *= 1.2
		s.speed *= 1.1
	}

	switch perf.Transmission {
	case core.TransmissionSport:
		s.acceleration *= 1.1
		s.handling *= 1.05
	case core.TransmissionRace:
		s.acceleration *= 1.2
		s.handling *= 1.15
		s.braking *= 1.1
	}

	// Heavier than the reference suppresses acceleration and handling, lighter inflates them.
	weightFactor := referenceWeight / s.weight
	s.acceleration *= weightFactor
	s.handling *= weightFactor

	return core.Stats{
		Speed:        roundHalfUp(s.speed),
		Acceleration: roundHalfUp(s.acceleration),
		Braking:      roundHalfUp(s.braking),
		Handling:     roundHalfUp(s.handling),
		Weight:       roundHalfUp(s.weight),
	}, nil
}

// Price computes the total price. It is additive and order-independent.
// Any non-stock wheels or body kit add a flat fee whatever the option's own catalog price.
// An unknown base model yields 0 rather than an error; Stats is the call that fails for it.
func Price(d core.Design) int64 {
	model, ok := catalog.Model(d.BaseModel)
	if !ok {
		return 0
	}
	perf := d.Modifications.Performance
	visual := d.Modifications.Visual

	total := model.Price
	total += int64(perf.EngineLevel-1) * EngineLevelPrice
	if perf.TurboInstalled {
		total += TurboPrice
	}

	switch perf.Transmission {
	case core.TransmissionSport:
		total += SportTransPrice
	case core.TransmissionRace:
		total += RaceTransPrice
	}

	if visual.Wheels != core.Stock {
		total += WheelsPrice
	}
	if visual.BodyKit != core.Stock {
		total += BodyKitPrice
	}

	return total
}

// Rating grades a stats vector by the mean of speed, acceleration, braking and handling.
// Weight is excluded. Each band includes its lower bound.
func Rating(s core.Stats) core.Rating {
	average := float64(s.Speed+s.Acceleration+s.Braking+s.Handling) / 4

	switch {
	case average >= 90:
		return core.RatingS
	case average >= 80:
		return core.RatingA
	case average >= 70:
		return core.RatingB
	case average >= 60:
		return core.RatingC
	default:
		return core.RatingD
	}
}

// Valuate returns stats, price and rating together. It fails exactly when Stats fails.
func Valuate(d core.Design) (core.Valuation, error) {
	stats, err := Stats(d)
	if err != nil {
		return core.Valuation{}, err
	}
	return core.Valuation{
		Stats:  stats,
		Price:  Price(d),
		Rating: Rating(stats),
	}, nil
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func validatePerformance(p core.Performance) error {
	if p.EngineLevel < core.MinEngineLevel || p.EngineLevel > core.MaxEngineLevel {
		return fmt.Errorf("engine level %d not in [%d,%d]: %w",
			p.EngineLevel, core.MinEngineLevel, core.MaxEngineLevel, ErrInvalidDesign)
	}
	if !p.Transmission.IsValid() {
		return fmt.Errorf("transmission %q: %w", p.Transmission, ErrInvalidDesign)
	}
	return nil
}
