package estimator

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
	"github.com/pkg/errors"
	"github.com/tuneinsight/lattigo/v6/utils/bignum"
)

const (
	// Prec is the precision in bits of every intermediate value.
	// Moduli up to 2^1024 are represented exactly.
	Prec = uint(1024)
)

// ErrNonPositive is returned when the logarithm of a non-positive
// quantity is requested.
var ErrNonPositive = errors.New("logarithm of a non-positive value")

// NewFloat allocates a new *big.Float with Prec bits of precision.
// Accepted types are int, int64, uint64, float64, *big.Int and *big.Float.
func NewFloat(x interface{}) (s *big.Float) {
	switch x := x.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			panic(fmt.Errorf("x cannot be NaN or Inf, but is %f", x))
		}
		return bignum.NewFloat(x, Prec)
	case int, int64, uint64, *big.Int, *big.Float:
		return bignum.NewFloat(x, Prec)
	default:
		panic(fmt.Errorf("invalid x.(type): must be int, int64, uint64, float64, *big.Int or *big.Float but is %T", x))
	}
}

// Sqrt returns sqrt(x).
func Sqrt(x interface{}) *big.Float {
	f := NewFloat(x)
	return f.Sqrt(f)
}

// Quo returns a/b.
func Quo(a, b interface{}) *big.Float {
	return new(big.Float).SetPrec(Prec).Quo(NewFloat(a), NewFloat(b))
}

// Sum returns the sum of the operands.
func Sum(x ...*big.Float) (s *big.Float) {
	s = NewFloat(0)
	for i := range x {
		s.Add(s, x[i])
	}
	return
}

// Prod returns the product of the operands.
func Prod(x ...*big.Float) (s *big.Float) {
	s = NewFloat(1)
	for i := range x {
		s.Mul(s, x[i])
	}
	return
}

// Log2 returns log2(x), or ErrNonPositive if x <= 0.
func Log2(x *big.Float) (*big.Float, error) {
	if x.Sign() <= 0 {
		return nil, errors.Wrapf(ErrNonPositive, "log2(%s)", x.Text('g', 10))
	}
	ln := bigfloat.Log(NewFloat(x))
	return ln.Quo(ln, bignum.Log2(Prec)), nil
}

// BitLength returns floor(log2(x)) + 1, or ErrNonPositive if x <= 0.
// The value is read from the binary exponent of x and is therefore exact.
func BitLength(x *big.Float) (int, error) {
	if x.Sign() <= 0 {
		return 0, errors.Wrapf(ErrNonPositive, "bit length of %s", x.Text('g', 10))
	}
	// x = mant * 2^exp with 0.5 <= mant < 1
	return x.MantExp(nil), nil
}

// Floor returns floor(x) as a *big.Int.
func Floor(x *big.Float) (i *big.Int) {
	i, acc := x.Int(nil)
	if x.Sign() < 0 && acc == big.Above {
		i.Sub(i, big.NewInt(1))
	}
	return
}

// Fmod returns x - m*trunc(x/m). The result has the sign of x.
func Fmod(x, m *big.Float) *big.Float {
	i, _ := Quo(x, m).Int(nil)
	k := NewFloat(i)
	k.Mul(k, m)
	return k.Sub(NewFloat(x), k)
}

// Pow2 returns 2^x.
func Pow2(x *big.Float) *big.Float {
	return bigfloat.Pow(NewFloat(2), NewFloat(x))
}
