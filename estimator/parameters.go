package estimator

import (
	"fmt"
	"math/big"
	"math/bits"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tuneinsight/lattigo/v6/utils/bignum"
)

const (
	// Sigma is the standard deviation of the error distribution.
	Sigma = 3.19
	// H is the Hamming weight of the HElib secret key.
	H = 64
	// DefaultLogW is the log2 of the relinearization decomposition base.
	DefaultLogW = 16
)

// Modulus is a ciphertext or auxiliary modulus. Moduli given as integers keep
// their exact value so that residues and quotients by the plaintext modulus
// carry no rounding. Moduli only known through their bit size (2^x) are
// approximate and have a nil Int.
type Modulus struct {
	Value *big.Float
	Int   *big.Int
}

// NewModulus returns an exact modulus.
func NewModulus(q *big.Int) Modulus {
	return Modulus{Value: NewFloat(q), Int: new(big.Int).Set(q)}
}

// NewModulusFromLog2 returns the approximate modulus 2^logQ.
func NewModulusFromLog2(logQ float64) Modulus {
	return Modulus{Value: Pow2(NewFloat(logQ))}
}

// ParseModulus parses a decimal integer, "2^<real>" or "0".
func ParseModulus(s string) (m Modulus, err error) {
	s = strings.TrimSpace(s)

	if rest, ok := strings.CutPrefix(s, "2^"); ok {
		var logQ float64
		if logQ, err = strconv.ParseFloat(rest, 64); err != nil {
			return m, errors.Wrapf(err, "invalid modulus %q", s)
		}
		return NewModulusFromLog2(logQ), nil
	}

	q, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return m, errors.Errorf("invalid modulus %q: must be a decimal integer or 2^<real>", s)
	}

	if q.Sign() == 0 {
		return Modulus{}, nil
	}

	return NewModulus(q), nil
}

// IsZero returns true if the modulus is absent.
func (m Modulus) IsZero() bool {
	return m.Value == nil || m.Value.Sign() == 0
}

// IsExact returns true if the modulus is known as an integer.
func (m Modulus) IsExact() bool {
	return m.Int != nil
}

// Mod returns m mod t.
func (m Modulus) Mod(t uint64) *big.Int {
	if !m.IsExact() {
		panic(fmt.Errorf("cannot Mod: modulus 2^%.4f is not exact", m.Log2()))
	}
	return new(big.Int).Mod(m.Int, new(big.Int).SetUint64(t))
}

// Quo returns floor(m/t).
func (m Modulus) Quo(t uint64) *big.Int {
	if !m.IsExact() {
		panic(fmt.Errorf("cannot Quo: modulus 2^%.4f is not exact", m.Log2()))
	}
	return new(big.Int).Quo(m.Int, new(big.Int).SetUint64(t))
}

// Log2 returns an approximation of log2(m), for display.
func (m Modulus) Log2() float64 {
	if m.IsZero() {
		return 0
	}
	l, _ := Log2(m.Value)
	f, _ := l.Float64()
	return f
}

func (m Modulus) String() string {
	switch {
	case m.IsZero():
		return "0"
	case m.IsExact():
		return m.Int.String()
	default:
		return fmt.Sprintf("2^%g", m.Log2())
	}
}

// Parameters is a parameter set of a noise estimate.
type Parameters struct {
	N    int
	T    uint64
	Q    Modulus
	P    Modulus
	LogW int
}

// NewParameters creates a new Parameters and checks its validity.
// p can be the zero Modulus when no modulus switching is available.
func NewParameters(N int, T uint64, Q, P Modulus, LogW int) (params Parameters, err error) {
	params = Parameters{
		N:    N,
		T:    T,
		Q:    Q,
		P:    P,
		LogW: LogW,
	}
	return params, params.Validate()
}

// Validate returns an error if the parameters are invalid.
func (p Parameters) Validate() error {
	if p.N <= 0 || bits.OnesCount(uint(p.N)) != 1 {
		return errors.Errorf("invalid parameters: N=%d must be a power of two", p.N)
	}

	if p.T == 0 {
		return errors.New("invalid parameters: T must be positive")
	}

	if p.Q.IsZero() || p.Q.Value.Sign() < 0 {
		return errors.New("invalid parameters: Q must be positive")
	}

	if !p.P.IsZero() && (p.P.Value.Sign() < 0 || p.P.Value.Cmp(p.Q.Value) >= 0) {
		return errors.Errorf("invalid parameters: P=%s must be in (0, Q)", p.P)
	}

	if p.LogW <= 0 {
		return errors.Errorf("invalid parameters: LogW=%d must be positive", p.LogW)
	}

	return nil
}

// HasModSwitch returns true if an auxiliary modulus is available.
func (p Parameters) HasModSwitch() bool {
	return !p.P.IsZero()
}

// W returns the decomposition base 2^LogW.
func (p Parameters) W() *big.Float {
	return NewFloat(new(big.Int).Lsh(big.NewInt(1), uint(p.LogW)))
}

// Ell returns the number of decomposition digits floor(ln(q)/ln(w)).
func (p Parameters) Ell() *big.Float {
	ell := bignum.Log(NewFloat(p.Q.Value))
	ell.Quo(ell, bignum.Log(p.W()))
	return NewFloat(Floor(ell))
}

// Delta returns floor(q/t).
func (p Parameters) Delta() *big.Float {
	return NewFloat(p.Q.Quo(p.T))
}

// RtQ returns q mod t.
func (p Parameters) RtQ() *big.Float {
	return NewFloat(p.Q.Mod(p.T))
}

// RtP returns p mod t.
func (p Parameters) RtP() *big.Float {
	return NewFloat(p.P.Mod(p.T))
}

func (p Parameters) n() *big.Float {
	return NewFloat(p.N)
}

func (p Parameters) t() *big.Float {
	return NewFloat(p.T)
}

// pValue returns p, or 0 if no auxiliary modulus is set.
func (p Parameters) pValue() *big.Float {
	if p.P.IsZero() {
		return NewFloat(0)
	}
	return NewFloat(p.P.Value)
}

// pOverQ returns p/q, or 0 if no auxiliary modulus is set.
func (p Parameters) pOverQ() *big.Float {
	return Quo(p.pValue(), p.Q.Value)
}
