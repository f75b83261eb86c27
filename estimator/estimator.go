package estimator

import (
	"math/big"

	"github.com/pkg/errors"
)

// Estimator evaluates the formulas of one variant on one parameter set.
// It holds no state besides its inputs: every method is a pure function.
type Estimator struct {
	Parameters Parameters
	Variant    Variant
	formulas   Formulas
}

// NewEstimator returns an Estimator for the given parameters and variant.
func NewEstimator(params Parameters, variant Variant) (*Estimator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if _, ok := variantNames[variant]; !ok {
		return nil, errors.Errorf("invalid variant: %d", int(variant))
	}

	if variant.ExactModulus() {
		if !params.Q.IsExact() {
			return nil, errors.Errorf("variant %s requires an exact Q, but Q=%s", variant, params.Q)
		}
		if params.HasModSwitch() && !params.P.IsExact() {
			return nil, errors.Errorf("variant %s requires an exact P, but P=%s", variant, params.P)
		}
	}

	return &Estimator{
		Parameters: params,
		Variant:    variant,
		formulas:   variant.Formulas(),
	}, nil
}

// Fresh returns the noise of a fresh encryption.
func (e *Estimator) Fresh() *big.Float {
	return e.formulas.Fresh(e.Parameters)
}

// Add returns the noise of the sum of ciphertexts with noise v0 and v1.
func (e *Estimator) Add(v0, v1 *big.Float) *big.Float {
	return e.formulas.Add(e.Parameters, v0, v1)
}

// Mul returns the noise of the product of ciphertexts with noise v0 and v1.
func (e *Estimator) Mul(v0, v1 *big.Float) *big.Float {
	return e.formulas.Mul(e.Parameters, v0, v1)
}

// Relinearize returns the noise after relinearizing a ciphertext with noise v.
func (e *Estimator) Relinearize(v *big.Float) *big.Float {
	return e.formulas.Relinearize(e.Parameters, v)
}

// ModSwitch returns the noise after switching a ciphertext with noise v from Q to P.
func (e *Estimator) ModSwitch(v *big.Float) (*big.Float, error) {
	if !e.Parameters.HasModSwitch() {
		return nil, errors.Errorf("cannot ModSwitch: no auxiliary modulus for N=%d", e.Parameters.N)
	}
	return e.formulas.ModSwitch(e.Parameters, v), nil
}

// Budget returns the noise budget of v at modulus Q.
func (e *Estimator) Budget(v *big.Float) (*big.Float, error) {
	return e.formulas.Budget(e.Parameters, v, e.Parameters.Q)
}

// BudgetAfterModSwitch returns the noise budget of v at modulus P.
func (e *Estimator) BudgetAfterModSwitch(v *big.Float) (*big.Float, error) {
	if !e.Parameters.HasModSwitch() {
		return nil, errors.Errorf("cannot compute budget at P: no auxiliary modulus for N=%d", e.Parameters.N)
	}
	return e.formulas.Budget(e.Parameters, v, e.Parameters.P)
}
