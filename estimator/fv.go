package estimator

import (
	"math/big"
)

// SEAL heuristic bounds predating Iliashenko. Noise is the invariant noise
// scaled by the modulus it is defined at: q·v before modulus switching and
// p·v after.

// fvFresh returns t√(3n)·r_t(q) + 2tσ(3√n + 16√2/√3·n).
func fvFresh(p Parameters) *big.Float {
	n, t := p.n(), p.t()

	e := Prod(t, Sqrt(Prod(NewFloat(3), n)), p.RtQ())

	inner := Prod(Quo(Prod(NewFloat(16), Sqrt(2)), Sqrt(3)), n)
	inner.Add(inner, Prod(NewFloat(3), Sqrt(n)))

	return e.Add(e, Prod(t, NewFloat(2), NewFloat(Sigma), inner))
}

// fvSplodge returns (1/√12)·2t√n(3 + 8√2/√3·√n + 40n/3).
func fvSplodge(p Parameters) *big.Float {
	n, t := p.n(), p.t()
	inner := Sum(
		NewFloat(3),
		Prod(Quo(Prod(NewFloat(8), Sqrt(2)), Sqrt(3)), Sqrt(n)),
		Quo(Prod(NewFloat(40), n), 3),
	)
	return Prod(Quo(1, Sqrt(12)), NewFloat(2), t, Sqrt(n), inner)
}

// fvMul returns 3·v0v1/q + S + F(v0 + v1) with F = S + 2t√(3n).
func fvMul(p Parameters, v0, v1 *big.Float) *big.Float {
	splodge := fvSplodge(p)
	factor := Sum(splodge, Prod(NewFloat(2), p.t(), Sqrt(Prod(NewFloat(3), p.n()))))

	e := Quo(Prod(v0, v1), p.Q.Value)
	e.Mul(e, NewFloat(3))
	e.Add(e, splodge)
	e.Add(e, Prod(factor, v0))
	return e.Add(e, Prod(factor, v1))
}

// fvRelinearize returns v + t(ℓ+1)(8/√3)σ·n·w.
func fvRelinearize(p Parameters, v *big.Float) *big.Float {
	ell := p.Ell()
	ell.Add(ell, NewFloat(1))
	return Sum(v, Prod(p.t(), ell, Quo(8, Sqrt(3)), NewFloat(Sigma), p.n(), p.W()))
}

// fvModSwitch returns v/(q/p) + t(√(3n) + 8√2/√3·n).
func fvModSwitch(p Parameters, v *big.Float) *big.Float {
	n := p.n()
	e := Sum(Sqrt(Prod(NewFloat(3), n)), Prod(Quo(Prod(NewFloat(8), Sqrt(2)), Sqrt(3)), n))
	e.Mul(e, p.t())
	return e.Add(e, Quo(v, Quo(p.Q.Value, p.pValue())))
}
