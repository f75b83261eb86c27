package estimator

import (
	"math/big"
)

// bgvIliashenkoFresh returns 6t(σ√(8/3)·n + σ√n + √(n/12)).
func bgvIliashenkoFresh(p Parameters) *big.Float {
	n := p.n()
	sigma := NewFloat(Sigma)

	e := Sum(
		Prod(sigma, Sqrt(Quo(8, 3)), n),
		Prod(sigma, Sqrt(n)),
		Sqrt(Quo(n, 12)),
	)

	return e.Mul(e, Prod(NewFloat(6), p.t()))
}

// bgvIliashenkoRelinearize returns v + t√(ℓ+1)·n·w·σ·√3.
func bgvIliashenkoRelinearize(p Parameters, v *big.Float) *big.Float {
	ell := p.Ell()
	ell.Add(ell, NewFloat(1))
	return Sum(v, Prod(p.t(), Sqrt(ell), p.n(), p.W(), NewFloat(Sigma), Sqrt(3)))
}

// bgvIliashenkoModSwitch returns 6t(√(n/12) + n/√18) + (p/q)v.
func bgvIliashenkoModSwitch(p Parameters, v *big.Float) *big.Float {
	n := p.n()
	e := Sum(Sqrt(Quo(n, 12)), Quo(n, Sqrt(18)))
	e.Mul(e, Prod(NewFloat(6), p.t()))
	return e.Add(e, Prod(p.pOverQ(), v))
}
