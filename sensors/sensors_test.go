package sensors

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"pgregory.net/rapid"
)

func TestParseUnit(t *testing.T) {
	for _, u := range []Unit{KilometersPerHour, MetersPerSecond, MilesPerHour} {
		parsed, err := ParseUnit(u.String())
		if err != nil {
			t.Fatalf("failed parsing %v: %v", u, err)
		}
		if parsed != u {
			t.Errorf("expected %v, got %v", u, parsed)
		}
	}
	if _, err := ParseUnit("furlongs/fortnight"); err == nil {
		t.Errorf("expected error for unknown unit")
	}
}

func TestUnitConversion(t *testing.T) {
	if got := MetersPerSecond.ToKilometersPerHour(10); !scalar.EqualWithinAbs(got, 36, 1e-9) {
		t.Errorf("expected 36 km/h, got %v", got)
	}
	if got := MilesPerHour.FromKilometersPerHour(KilometersPerMile); !scalar.EqualWithinAbs(got, 1, 1e-9) {
		t.Errorf("expected 1 mph, got %v", got)
	}
	rapid.Check(t, func(t *rapid.T) {
		u := Unit(rapid.IntRange(0, int(MilesPerHour)).Draw(t, "unit"))
		v := rapid.Float64Range(0, 500).Draw(t, "v")
		back := u.ToKilometersPerHour(u.FromKilometersPerHour(v))
		if !scalar.EqualWithinAbsOrRel(back, v, 1e-9, 1e-9) {
			t.Fatalf("round trip through %v: %v became %v", u, v, back)
		}
	})
}

func TestRide(t *testing.T) {
	a := NewRide(7)
	b := NewRide(7)
	for i := 0; i < 500; i++ {
		va, err := a.Read()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		vb, _ := b.Read()
		if va != vb {
			t.Fatalf("read %d: same seed produced %v and %v", i, va, vb)
		}
		if va < 0 {
			t.Fatalf("read %d: negative speed %v", i, va)
		}
	}
	slow := NewRide(1)
	slow.Base = 0
	slow.Amplitude = 1
	slow.Noise = 10
	for i := 0; i < 100; i++ {
		if v, _ := slow.Read(); v < 0 {
			t.Fatalf("read %d: negative speed %v", i, v)
		}
	}
	if NewRide(1).In(MilesPerHour).Unit() != MilesPerHour {
		t.Errorf("expected unit to change")
	}
}
