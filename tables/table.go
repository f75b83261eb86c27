package tables

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/tuneinsight/he-noise-heuristics/estimator"
)

// Output is the quantity a table reports for each step.
type Output int

const (
	// OutputLog2 reports log2 of the noise.
	OutputLog2 = Output(iota)
	// OutputBudget reports the noise budget.
	OutputBudget
)

// Table is one table of the paper: a variant evaluated on a group of
// parameter sets along a fixed chain of operations.
//
// The chain is fresh, add(fresh, fresh), mult(add, fresh), relin(mult) and,
// when the parameter set has an auxiliary modulus, mod_switch(ModSwitchInput).
// Only Steps, followed by mod_switch when available, are reported.
type Table struct {
	ID             string
	Title          string
	Variant        estimator.Variant
	Group          string
	T              uint64
	TLabel         string
	Output         Output
	Steps          []estimator.Op
	ModSwitchInput estimator.Op
}

// Row is the evaluation of a table on one parameter set.
type Row struct {
	N      int
	T      uint64
	Ops    []estimator.Op
	Values []*big.Float
}

// Result is the evaluation of a table on all its parameter sets.
type Result struct {
	Table Table
	Rows  []Row
}

// Driver evaluates tables on a catalogue of parameter sets.
type Driver struct {
	catalogue *Catalogue
	log       *zerolog.Logger
}

// NewDriver returns a new Driver. log can be nil.
func NewDriver(c *Catalogue, log *zerolog.Logger) *Driver {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Driver{catalogue: c, log: log}
}

// Run evaluates the table on every parameter set of its group, in order.
func (d *Driver) Run(table Table) (res Result, err error) {
	sets, err := d.catalogue.Group(table.Group)
	if err != nil {
		return res, errors.Wrapf(err, "table %s", table.ID)
	}

	res.Table = table
	res.Rows = make([]Row, 0, len(sets))

	for _, set := range sets {

		params, err := d.catalogue.Parameters(set, table.T)
		if err != nil {
			return res, errors.Wrapf(err, "table %s, N=%d", table.ID, set.N)
		}

		row, err := table.Evaluate(params)
		if err != nil {
			return res, errors.Wrapf(err, "table %s, N=%d", table.ID, set.N)
		}

		d.log.Debug().
			Str("table", table.ID).
			Str("variant", table.Variant.String()).
			Int("n", row.N).
			Uint64("t", row.T).
			Int("arity", len(row.Values)).
			Msg("evaluated row")

		res.Rows = append(res.Rows, row)
	}

	return
}

// RunAll evaluates the given tables, in order.
func (d *Driver) RunAll(tables []Table) ([]Result, error) {
	results := make([]Result, 0, len(tables))
	for _, table := range tables {
		res, err := d.Run(table)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Evaluate runs the chain of the table on one parameter set.
func (table Table) Evaluate(params estimator.Parameters) (row Row, err error) {
	est, err := estimator.NewEstimator(params, table.Variant)
	if err != nil {
		return row, err
	}

	noise := make(map[estimator.Op]*big.Float, 5)
	noise[estimator.OpFresh] = est.Fresh()
	noise[estimator.OpAdd] = est.Add(noise[estimator.OpFresh], noise[estimator.OpFresh])
	noise[estimator.OpMul] = est.Mul(noise[estimator.OpAdd], noise[estimator.OpFresh])
	noise[estimator.OpRelinearize] = est.Relinearize(noise[estimator.OpMul])

	row.N = params.N
	row.T = params.T

	for _, op := range table.Steps {
		var value *big.Float
		if value, err = table.report(est, noise[op], false); err != nil {
			return row, errors.Wrap(err, op.String())
		}
		row.Ops = append(row.Ops, op)
		row.Values = append(row.Values, value)
	}

	if params.HasModSwitch() {

		input, ok := noise[table.ModSwitchInput]
		if !ok {
			return row, errors.Errorf("invalid mod switch input %s", table.ModSwitchInput)
		}

		if noise[estimator.OpModSwitch], err = est.ModSwitch(input); err != nil {
			return row, err
		}

		var value *big.Float
		if value, err = table.report(est, noise[estimator.OpModSwitch], true); err != nil {
			return row, errors.Wrap(err, estimator.OpModSwitch.String())
		}

		row.Ops = append(row.Ops, estimator.OpModSwitch)
		row.Values = append(row.Values, value)
	}

	return
}

func (table Table) report(est *estimator.Estimator, v *big.Float, switched bool) (*big.Float, error) {
	switch table.Output {
	case OutputLog2:
		return estimator.Log2(v)
	case OutputBudget:
		if switched {
			return est.BudgetAfterModSwitch(v)
		}
		return est.Budget(v)
	default:
		return nil, errors.Errorf("invalid output: %d", int(table.Output))
	}
}
