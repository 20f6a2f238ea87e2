package sensors

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

type Unit uint8

func (u Unit) String() string {
	switch u {
	case KilometersPerHour:
		return "km/h"
	case MetersPerSecond:
		return "m/s"
	case MilesPerHour:
		return "mph"
	default:
		return "?"
	}
}

const (
	KilometersPerHour Unit = iota
	MetersPerSecond
	MilesPerHour
	Unknown
)

const (
	// KilometersPerMile is the conversion factor from miles to kilometers.
	KilometersPerMile = 1.609344
)

// ParseUnit is the inverse of [Unit.String].
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "km/h", "kph":
		return KilometersPerHour, nil
	case "m/s":
		return MetersPerSecond, nil
	case "mph":
		return MilesPerHour, nil
	default:
		return Unknown, fmt.Errorf("unknown speed unit %q", s)
	}
}

// ToKilometersPerHour converts a speed in u to km/h.
func (u Unit) ToKilometersPerHour(v float64) float64 {
	switch u {
	case MetersPerSecond:
		return v * 3.6
	case MilesPerHour:
		return v * KilometersPerMile
	default:
		return v
	}
}

// FromKilometersPerHour converts a speed in km/h to u.
func (u Unit) FromKilometersPerHour(v float64) float64 {
	switch u {
	case MetersPerSecond:
		return v / 3.6
	case MilesPerHour:
		return v / KilometersPerMile
	default:
		return v
	}
}

type Sensor interface {
	Name() string
	Unit() Unit
	Read() (float64, error)
}

// Ride is a synthetic speed sensor. Each Read advances one step along a
// slow wave around Base with random noise on top. It never reports a
// negative speed.
type Ride struct {
	Base      float64
	Amplitude float64
	// Period is the number of reads per full wave.
	Period int
	Noise  float64
	unit   Unit
	step   int
	rng    *rand.Rand
}

var _ Sensor = (*Ride)(nil)

// NewRide returns a Ride producing km/h readings. Rides with the same seed
// produce the same readings.
func NewRide(seed int64) *Ride {
	return &Ride{
		Base:      25,
		Amplitude: 8,
		Period:    120,
		Noise:     1.5,
		unit:      KilometersPerHour,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// In changes the unit of future readings.
func (r *Ride) In(u Unit) *Ride {
	r.unit = u
	return r
}

func (r *Ride) Name() string {
	return "speed"
}

func (r *Ride) Unit() Unit {
	return r.unit
}

func (r *Ride) Read() (float64, error) {
	period := r.Period
	if period <= 0 {
		period = 1
	}
	phase := 2 * math.Pi * float64(r.step%period) / float64(period)
	r.step++
	v := r.Base + r.Amplitude*math.Sin(phase) + r.Noise*r.rng.NormFloat64()
	return r.unit.FromKilometersPerHour(max(v, 0)), nil
}
