package estimator

import (
	"math/big"
)

// SEAL heuristic bounds on the scaled inherent noise v, where
// decryption is correct while q·v < q/2 - t^2.

// fvScaledFresh returns 2σ(t/q)(3√n + 16√2/√3·n).
func fvScaledFresh(p Parameters) *big.Float {
	n := p.n()
	e := Sum(Prod(NewFloat(3), Sqrt(n)), Prod(Quo(Prod(NewFloat(16), Sqrt(2)), Sqrt(3)), n))
	return e.Mul(e, Prod(Quo(p.t(), p.Q.Value), NewFloat(2), NewFloat(Sigma)))
}

// fvScaledAdd returns v0 + v1 + 3(t/q)√(3n)·r_t(q).
func fvScaledAdd(p Parameters, v0, v1 *big.Float) *big.Float {
	e := Prod(Quo(p.t(), p.Q.Value), NewFloat(3), Sqrt(Prod(NewFloat(3), p.n())), p.RtQ())
	return e.Add(e, Sum(v0, v1))
}

// fvScaledPoly returns 3 + 8√(2n)/√3 + 40n/3.
func fvScaledPoly(n *big.Float) *big.Float {
	return Sum(
		NewFloat(3),
		Quo(Prod(NewFloat(8), Sqrt(Prod(NewFloat(2), n))), Sqrt(3)),
		Quo(Prod(NewFloat(40), n), 3),
	)
}

func fvScaledMul(p Parameters, v0, v1 *big.Float) *big.Float {
	n, t, q := p.n(), p.t(), p.Q.Value
	delta, r := p.Delta(), p.RtQ()

	sqrt3n := Sqrt(Prod(NewFloat(3), n))
	t2 := Prod(t, t)
	t3 := Prod(t2, t)
	q2 := Prod(q, q)
	sum := Sum(v0, v1)
	poly := fvScaledPoly(n)

	// r_t(q)·t·a_0/q
	e := Quo(Prod(t, sqrt3n, r), q)
	e.Add(e, Quo(Prod(NewFloat(4), r, n, t2), Prod(NewFloat(3), q)))

	// r_t(q)·Δ·t·[m_0m_1]_t/q^2
	rDelta := Quo(Prod(r, delta, sqrt3n, t2), q2)
	e.Add(e, rDelta)

	// t^2·r_t(q)·Δ·a_0/q^2
	e.Add(e, rDelta)
	e.Add(e, Quo(Prod(NewFloat(4), n, r, delta, t3), Prod(NewFloat(3), q2)))

	// t·Δ·(m_1v_0 + m_0v_1)/q
	deltaTerm := Quo(Prod(delta, sqrt3n, t2), q)
	e.Add(e, Prod(deltaTerm, sum))

	// r_t(q)·(m_1a_0t + m_0a_1t)
	inner := Prod(Quo(Prod(NewFloat(2), t, Sqrt(n)), Sqrt(3)), poly)
	inner.Add(inner, Prod(NewFloat(2), deltaTerm))
	inner.Add(inner, sum)
	e.Add(e, Quo(Prod(r, t, sqrt3n, inner), q))

	// v_0·v_1
	e.Add(e, Prod(v0, v1))

	// v_1a_0t + v_0a_1t
	e.Add(e, Prod(NewFloat(2), v0, v1))
	a := Prod(Quo(Prod(NewFloat(2), t, Sqrt(n)), Sqrt(12)), poly)
	a.Add(a, deltaTerm)
	e.Add(e, Prod(sum, a))

	// (t/q)·Σ ε_i·s^i
	return e.Add(e, Quo(Prod(NewFloat(2), t, Sqrt(n), poly), Prod(q, Sqrt(12))))
}

// fvScaledRelinearize returns v + t(ℓ+1)(8/√3)σ·n·w/q.
func fvScaledRelinearize(p Parameters, v *big.Float) *big.Float {
	ell := p.Ell()
	ell.Add(ell, NewFloat(1))
	e := Prod(p.t(), ell, Quo(8, Sqrt(3)), NewFloat(Sigma), p.n(), p.W())
	e.Quo(e, p.Q.Value)
	return e.Add(e, v)
}

// fvScaledModSwitch returns t√(3n)(r_t(p)/p - r_t(q)/q) + (t/p)(√(3n) + 8√2/√3·n) + v.
func fvScaledModSwitch(p Parameters, v *big.Float) *big.Float {
	n, t := p.n(), p.t()
	pv, q := p.pValue(), p.Q.Value
	sqrt3n := Sqrt(Prod(NewFloat(3), n))

	e := Quo(p.RtP(), pv)
	e.Sub(e, Quo(p.RtQ(), q))
	e.Mul(e, Prod(t, sqrt3n))

	rounding := Sum(sqrt3n, Prod(Quo(Prod(NewFloat(8), Sqrt(2)), Sqrt(3)), n))
	rounding.Mul(rounding, Quo(t, pv))
	e.Add(e, rounding)

	return e.Add(e, v)
}
