package estimator

import (
	"math/big"

	"github.com/pkg/errors"
)

// CriticalQuantityBudget returns bitlen(q) - bitlen(v) - 1.
// The budget is not clamped: a negative value means that decryption fails.
func CriticalQuantityBudget(v, q *big.Float) (*big.Float, error) {
	bitsQ, err := BitLength(q)
	if err != nil {
		return nil, errors.Wrap(err, "modulus")
	}

	bitsV, err := BitLength(v)
	if err != nil {
		return nil, errors.Wrap(err, "noise")
	}

	return NewFloat(bitsQ - bitsV - 1), nil
}

// ClampedCriticalQuantityBudget returns max(0, bitlen(q) - bitlen(v mod q) - 1),
// where v is the invariant noise scaled by q.
func ClampedCriticalQuantityBudget(v, q *big.Float) (*big.Float, error) {
	if q.Sign() <= 0 {
		return nil, errors.Wrapf(ErrNonPositive, "modulus %s", q.Text('g', 10))
	}

	budget, err := CriticalQuantityBudget(Fmod(v, q), q)
	if err != nil {
		return nil, err
	}

	if budget.Sign() < 0 {
		budget.SetInt64(0)
	}

	return budget, nil
}

// InvariantNoiseBudget returns bitlen(q/2 - t) - bitlen(v).
// The budget is not clamped.
func InvariantNoiseBudget(v, q *big.Float, t uint64) (*big.Float, error) {
	threshold := Quo(q, 2)
	threshold.Sub(threshold, NewFloat(t))

	bitsThreshold, err := BitLength(threshold)
	if err != nil {
		return nil, errors.Wrap(err, "q/2 - t")
	}

	bitsV, err := BitLength(v)
	if err != nil {
		return nil, errors.Wrap(err, "noise")
	}

	return NewFloat(bitsThreshold - bitsV), nil
}

// ScaledInherentBudget returns max(0, log2(q/2 - t^2) - log2(q·v)).
// This budget is a real number.
func ScaledInherentBudget(v, q *big.Float, t uint64) (*big.Float, error) {
	threshold := Quo(q, 2)
	threshold.Sub(threshold, Prod(NewFloat(t), NewFloat(t)))

	logThreshold, err := Log2(threshold)
	if err != nil {
		return nil, errors.Wrap(err, "q/2 - t^2")
	}

	logV, err := Log2(Prod(q, v))
	if err != nil {
		return nil, errors.Wrap(err, "noise")
	}

	budget := logThreshold.Sub(logThreshold, logV)

	if budget.Sign() < 0 {
		budget.SetInt64(0)
	}

	return budget, nil
}

func criticalQuantityBudget(_ Parameters, v *big.Float, m Modulus) (*big.Float, error) {
	return CriticalQuantityBudget(v, m.Value)
}

func clampedCriticalQuantityBudget(_ Parameters, v *big.Float, m Modulus) (*big.Float, error) {
	return ClampedCriticalQuantityBudget(v, m.Value)
}

func invariantNoiseBudget(p Parameters, v *big.Float, m Modulus) (*big.Float, error) {
	return InvariantNoiseBudget(v, m.Value, p.T)
}

func scaledInherentBudget(p Parameters, v *big.Float, m Modulus) (*big.Float, error) {
	return ScaledInherentBudget(v, m.Value, p.T)
}
