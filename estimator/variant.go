package estimator

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Variant is a heuristic noise model: a scheme family, a noise
// representation and a refinement level. Variants are never mixed
// within a table.
type Variant int

const (
	// BGVOld is the HElib critical quantity model with the heuristic bounds
	// predating Iliashenko.
	BGVOld = Variant(iota)
	// BGVIliashenko is the HElib critical quantity model with Iliashenko's bounds.
	BGVIliashenko
	// BGVInvariant is the HElib model expressed in invariant noise.
	BGVInvariant
	// FVOld is the SEAL invariant noise model (scaled by q) with the heuristic
	// bounds predating Iliashenko.
	FVOld
	// FVIliashenko is the SEAL invariant noise model (scaled by q) with
	// Iliashenko's bounds.
	FVIliashenko
	// FVScaledInherent is the SEAL model expressed in scaled inherent noise.
	FVScaledInherent
)

// Family is a scheme family.
type Family int

const (
	BGV = Family(iota)
	FV
)

func (f Family) String() string {
	switch f {
	case BGV:
		return "BGV"
	case FV:
		return "FV"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

var variantNames = map[Variant]string{
	BGVOld:           "bgv-old",
	BGVIliashenko:    "bgv-iliashenko",
	BGVInvariant:     "bgv-invariant",
	FVOld:            "fv-old",
	FVIliashenko:     "fv-iliashenko",
	FVScaledInherent: "fv-scaled-inherent",
}

func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant returns the variant of the given name.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for v, name := range variantNames {
		if name == s {
			return v, nil
		}
	}
	return 0, errors.Errorf("unknown variant %q", s)
}

// Variants returns all the variants in declaration order.
func Variants() []Variant {
	v := maps.Keys(variantNames)
	slices.Sort(v)
	return v
}

// Family returns the scheme family of the variant.
func (v Variant) Family() Family {
	switch v {
	case BGVOld, BGVIliashenko, BGVInvariant:
		return BGV
	default:
		return FV
	}
}

// RealBudget returns true if the budget of the variant is a real number
// instead of an integer number of bits.
func (v Variant) RealBudget() bool {
	return v == FVScaledInherent
}

// ExactModulus returns true if the variant needs q mod t, and thus an
// exact ciphertext modulus.
func (v Variant) ExactModulus() bool {
	return v.Family() == FV
}

// Formulas are the closed-form noise estimates of a variant.
// Noise values are not normalized across variants: each variant
// works in its own representation.
type Formulas struct {
	// Fresh returns the noise of a fresh encryption.
	Fresh func(p Parameters) *big.Float
	// Add returns the noise of the sum of two ciphertexts.
	Add func(p Parameters, v0, v1 *big.Float) *big.Float
	// Mul returns the noise of the tensor product of two ciphertexts.
	Mul func(p Parameters, v0, v1 *big.Float) *big.Float
	// Relinearize returns the noise after key switching a degree two ciphertext.
	Relinearize func(p Parameters, v *big.Float) *big.Float
	// ModSwitch returns the noise after switching the modulus from Q to P.
	ModSwitch func(p Parameters, v *big.Float) *big.Float
	// Budget returns the noise budget of noise v at modulus m.
	Budget func(p Parameters, v *big.Float, m Modulus) (*big.Float, error)
}

// Formulas returns the closed-form estimates of the variant.
func (v Variant) Formulas() Formulas {
	switch v {
	case BGVOld:
		return Formulas{
			Fresh:       bgvFresh,
			Add:         addNoise,
			Mul:         bgvMul,
			Relinearize: bgvRelinearize,
			ModSwitch:   bgvModSwitch,
			Budget:      criticalQuantityBudget,
		}
	case BGVIliashenko:
		return Formulas{
			Fresh:       bgvIliashenkoFresh,
			Add:         addNoise,
			Mul:         bgvMul,
			Relinearize: bgvIliashenkoRelinearize,
			ModSwitch:   bgvIliashenkoModSwitch,
			Budget:      criticalQuantityBudget,
		}
	case BGVInvariant:
		return Formulas{
			Fresh:       bgvInvariantFresh,
			Add:         addNoise,
			Mul:         bgvInvariantMul,
			Relinearize: bgvRelinearize,
			ModSwitch:   bgvInvariantModSwitch,
			Budget:      invariantNoiseBudget,
		}
	case FVOld:
		return Formulas{
			Fresh:       fvFresh,
			Add:         addNoise,
			Mul:         fvMul,
			Relinearize: fvRelinearize,
			ModSwitch:   fvModSwitch,
			Budget:      clampedCriticalQuantityBudget,
		}
	case FVIliashenko:
		return Formulas{
			Fresh:       fvIliashenkoFresh,
			Add:         addNoise,
			Mul:         fvIliashenkoMul,
			Relinearize: fvIliashenkoRelinearize,
			ModSwitch:   fvIliashenkoModSwitch,
			Budget:      clampedCriticalQuantityBudget,
		}
	case FVScaledInherent:
		return Formulas{
			Fresh:       fvScaledFresh,
			Add:         fvScaledAdd,
			Mul:         fvScaledMul,
			Relinearize: fvScaledRelinearize,
			ModSwitch:   fvScaledModSwitch,
			Budget:      scaledInherentBudget,
		}
	default:
		panic(fmt.Errorf("invalid variant: %d", int(v)))
	}
}

// addNoise is shared by every variant whose noise adds linearly.
func addNoise(_ Parameters, v0, v1 *big.Float) *big.Float {
	return Sum(v0, v1)
}
