package estimator

import (
	"math/big"
)

// HElib heuristic bounds on the critical quantity and on the invariant
// noise, predating Iliashenko. The secret key has Hamming weight H.

// bgvFresh returns t * (2σ√n(16√h + 3) + √(3n)).
func bgvFresh(p Parameters) *big.Float {
	n, t := p.n(), p.t()

	e := Sqrt(H)
	e.Mul(e, NewFloat(16))
	e.Add(e, NewFloat(3))
	e.Mul(e, Prod(NewFloat(2), NewFloat(Sigma), Sqrt(n)))
	e.Add(e, Sqrt(Prod(NewFloat(3), n)))
	return e.Mul(e, t)
}

func bgvMul(_ Parameters, v0, v1 *big.Float) *big.Float {
	return Prod(v0, v1)
}

// bgvRelinearize returns v + t(ℓ+1)·n·w·σ·√3.
func bgvRelinearize(p Parameters, v *big.Float) *big.Float {
	ell := p.Ell()
	ell.Add(ell, NewFloat(1))
	return Sum(v, Prod(p.t(), ell, p.n(), p.W(), NewFloat(Sigma), Sqrt(3)))
}

// bgvModSwitch returns (√3 + 8√h/√3)·t√n + (p/q)v.
func bgvModSwitch(p Parameters, v *big.Float) *big.Float {
	e := Sum(Sqrt(3), Quo(Prod(NewFloat(8), Sqrt(H)), Sqrt(3)))
	e.Mul(e, Prod(p.t(), Sqrt(p.n())))
	return e.Add(e, Prod(p.pOverQ(), v))
}

// bgvInvariantFresh returns (16√h + 3)·2tσ√n.
func bgvInvariantFresh(p Parameters) *big.Float {
	e := Sqrt(H)
	e.Mul(e, NewFloat(16))
	e.Add(e, NewFloat(3))
	return e.Mul(e, Prod(NewFloat(2), p.t(), NewFloat(Sigma), Sqrt(p.n())))
}

// bgvInvariantMul returns (v0 + v1)·t√(3n) + v0·v1.
func bgvInvariantMul(p Parameters, v0, v1 *big.Float) *big.Float {
	e := Sum(v0, v1)
	e.Mul(e, Prod(p.t(), Sqrt(Prod(NewFloat(3), p.n()))))
	return e.Add(e, Prod(v0, v1))
}

// bgvInvariantModSwitch returns (√3(q-p)/q + √3 + 8√h/√3)·t√n + (p/q)v.
func bgvInvariantModSwitch(p Parameters, v *big.Float) *big.Float {
	q := p.Q.Value
	e := Prod(Sqrt(3), new(big.Float).SetPrec(Prec).Sub(q, p.pValue()))
	e.Quo(e, q)
	e.Add(e, Sqrt(3))
	e.Add(e, Quo(Prod(NewFloat(8), Sqrt(H)), Sqrt(3)))
	e.Mul(e, Prod(p.t(), Sqrt(p.n())))
	return e.Add(e, Prod(p.pOverQ(), v))
}
