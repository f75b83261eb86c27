package estimator

import (
	"math/big"
)

// fvIliashenkoFresh returns 6t√n(σ√(8n/3) + σ + r_t(q)/√12).
func fvIliashenkoFresh(p Parameters) *big.Float {
	n := p.n()
	sigma := NewFloat(Sigma)

	e := Sum(
		Prod(sigma, Sqrt(Quo(Prod(NewFloat(8), n), 3))),
		sigma,
		Quo(p.RtQ(), Sqrt(12)),
	)

	return e.Mul(e, Prod(NewFloat(6), p.t(), Sqrt(n)))
}

// fvIliashenkoMul returns 3·v0v1/q + t(√(3n) + √2·n + √(4/3)·n^(3/2)) + t(√(3n) + √2·n)(v0 + v1).
func fvIliashenkoMul(p Parameters, v0, v1 *big.Float) *big.Float {
	n, t := p.n(), p.t()

	factor := Sum(Sqrt(Prod(NewFloat(3), n)), Prod(Sqrt(2), n))
	factor.Mul(factor, t)

	splodge := Sum(Sqrt(Prod(NewFloat(3), n)), Prod(Sqrt(2), n), Prod(Sqrt(Quo(4, 3)), n, Sqrt(n)))
	splodge.Mul(splodge, t)

	e := Quo(Prod(v0, v1), p.Q.Value)
	e.Mul(e, NewFloat(3))
	e.Add(e, splodge)
	return e.Add(e, Prod(factor, Sum(v0, v1)))
}

// fvIliashenkoRelinearize returns v + t√(ℓ+1)·√3·σ·n·w.
func fvIliashenkoRelinearize(p Parameters, v *big.Float) *big.Float {
	ell := p.Ell()
	ell.Add(ell, NewFloat(1))
	return Sum(v, Prod(p.t(), Sqrt(ell), Sqrt(3), NewFloat(Sigma), p.n(), p.W()))
}

// fvIliashenkoModSwitch returns v/(q/p) + t(√(3n) + √2·n).
func fvIliashenkoModSwitch(p Parameters, v *big.Float) *big.Float {
	n := p.n()
	e := Sum(Sqrt(Prod(NewFloat(3), n)), Prod(Sqrt(2), n))
	e.Mul(e, p.t())
	return e.Add(e, Quo(v, Quo(p.Q.Value, p.pValue())))
}
