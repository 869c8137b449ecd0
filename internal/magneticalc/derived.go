package magneticalc

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Derived holds the scalar aggregates over a wire, sampling volume and
// B-field. Energy and self-inductance are only physically meaningful when
// the sampling volume encloses a large, non-singular portion of the field;
// the formulas are evaluated as given regardless.
type Derived struct {
	Energy         Real // J
	SelfInductance Real // H
	DipoleMoment   Real // A*m^2
}

// FieldEnergy integrates B^2/µ_r over the valid sampling volume points,
// weighted by the explicit volume element dV = (spacing*lengthScale)^3:
//
//	E = dV/µ0 * Σ B(x)·B(x)/µ_r(x)
func FieldEnergy(volume *SamplingVolume, field *Field, muZero, lengthScale Real) Real {
	squared := make([]Real, 0, len(field.B))
	for i, b := range field.B {
		if volume.Labels[i] == LabelExcluded {
			continue
		}
		squared = append(squared, b.Dot(b)/volume.Permeabilities[i])
	}
	return floats.Sum(squared) * volume.CellVolume(lengthScale) / muZero
}

// SelfInductance derives L = E/I². Fails for zero current.
func SelfInductance(energy, current Real) (Real, error) {
	if current == 0 {
		return math.NaN(), ErrDivisionByZero
	}
	return energy / (current * current), nil
}

// DipoleMoment returns the magnitude of the magnetic dipole moment
// m = |I/2 * Σ x' × ℓ(x')| over the wire's current elements.
func DipoleMoment(wire *Wire, lengthScale Real) Real {
	var sum Vector3
	for _, e := range wire.Elements() {
		sum = sum.Add(e.Center.Vec().Mul(lengthScale).Cross(e.Direction.Mul(lengthScale)))
	}
	return math.Abs(wire.Current * sum.Len() / 2)
}

// ComputeDerived evaluates all derived quantities for a computed B-field.
// With zero wire current the self-inductance is undefined: it is reported
// as NaN and ErrDivisionByZero is returned alongside the remaining values.
func ComputeDerived(wire *Wire, volume *SamplingVolume, field *Field, cfg EngineConfig) (Derived, error) {
	if cfg.MuZero == 0 {
		cfg.MuZero = MuZero
	}
	if cfg.LengthScale <= 0 {
		cfg.LengthScale = LengthScale
	}

	d := Derived{DipoleMoment: DipoleMoment(wire, cfg.LengthScale)}
	if field == nil || field.B == nil {
		d.Energy = math.NaN()
		d.SelfInductance = math.NaN()
		return d, nil
	}

	d.Energy = FieldEnergy(volume, field, cfg.MuZero, cfg.LengthScale)

	inductance, err := SelfInductance(d.Energy, wire.Current)
	d.SelfInductance = inductance
	return d, err
}
