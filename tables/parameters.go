package tables

import (
	_ "embed"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tuneinsight/he-noise-heuristics/estimator"
)

//go:embed params.yaml
var defaultParameters []byte

// ParameterSetLiteral is the serialized form of a ParameterSet.
type ParameterSetLiteral struct {
	N int    `yaml:"n"`
	Q string `yaml:"q"`
	P string `yaml:"p"`
}

// CatalogueLiteral is the serialized form of a Catalogue.
type CatalogueLiteral struct {
	LogW   int                              `yaml:"log_w"`
	Groups map[string][]ParameterSetLiteral `yaml:"groups"`
}

// ParameterSet pairs a ring dimension with its ciphertext modulus and,
// when modulus switching is possible, its auxiliary modulus.
type ParameterSet struct {
	N int
	Q estimator.Modulus
	P estimator.Modulus
}

// Catalogue is the set of parameter groups the tables are evaluated on.
type Catalogue struct {
	LogW   int
	Groups map[string][]ParameterSet
}

// DefaultCatalogue returns the parameter sets of the paper.
func DefaultCatalogue() *Catalogue {
	c, err := ParseCatalogue(defaultParameters)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalogue reads a catalogue from a YAML file.
func LoadCatalogue(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open parameter file")
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}

	c, err := ParseCatalogue(b)
	return c, errors.Wrapf(err, "invalid parameter file %s", path)
}

// ParseCatalogue parses a YAML catalogue.
func ParseCatalogue(b []byte) (*Catalogue, error) {
	var lit CatalogueLiteral
	if err := yaml.Unmarshal(b, &lit); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal catalogue")
	}

	if lit.LogW == 0 {
		lit.LogW = estimator.DefaultLogW
	}

	c := &Catalogue{
		LogW:   lit.LogW,
		Groups: make(map[string][]ParameterSet, len(lit.Groups)),
	}

	for name, sets := range lit.Groups {
		for i, s := range sets {
			set, err := s.ParameterSet()
			if err != nil {
				return nil, errors.Wrapf(err, "group %s, entry %d", name, i)
			}
			c.Groups[name] = append(c.Groups[name], set)
		}
	}

	return c, nil
}

// ParameterSet parses the moduli of the literal.
func (lit ParameterSetLiteral) ParameterSet() (set ParameterSet, err error) {
	set.N = lit.N

	if set.Q, err = estimator.ParseModulus(lit.Q); err != nil {
		return set, errors.Wrap(err, "q")
	}

	if lit.P != "" {
		if set.P, err = estimator.ParseModulus(lit.P); err != nil {
			return set, errors.Wrap(err, "p")
		}
	}

	return
}

// Parameters returns the estimator parameters of the set for plaintext modulus t.
func (c *Catalogue) Parameters(set ParameterSet, t uint64) (estimator.Parameters, error) {
	return estimator.NewParameters(set.N, t, set.Q, set.P, c.LogW)
}

// Group returns the parameter sets of the given group.
func (c *Catalogue) Group(name string) ([]ParameterSet, error) {
	sets, ok := c.Groups[name]
	if !ok {
		return nil, errors.Errorf("unknown parameter group %q", name)
	}
	return sets, nil
}
