package tables

import (
	"github.com/pkg/errors"

	"github.com/tuneinsight/he-noise-heuristics/estimator"
	"github.com/tuneinsight/he-noise-heuristics/stats"
)

// Compare returns, for each step reported by both results, statistics on
// candidate - baseline over the rows sharing the same n and t.
// Steps are returned in the order of the baseline.
func Compare(baseline, candidate Result) ([]*stats.DeltaStats, error) {
	if baseline.Table.Output != candidate.Table.Output {
		return nil, errors.Errorf("cannot compare table %s with table %s: different outputs", baseline.Table.ID, candidate.Table.ID)
	}

	type key struct {
		n int
		t uint64
	}

	rows := make(map[key]Row, len(candidate.Rows))
	for _, row := range candidate.Rows {
		rows[key{row.N, row.T}] = row
	}

	byOp := map[estimator.Op]*stats.DeltaStats{}
	var order []estimator.Op

	for _, b := range baseline.Rows {

		c, ok := rows[key{b.N, b.T}]
		if !ok {
			continue
		}

		cValues := make(map[estimator.Op]float64, len(c.Ops))
		for i, f := range c.Float64() {
			cValues[c.Ops[i]] = f
		}

		for i, f := range b.Float64() {
			op := b.Ops[i]

			g, ok := cValues[op]
			if !ok {
				continue
			}

			if _, ok := byOp[op]; !ok {
				byOp[op] = stats.NewDeltaStats(op.String())
				order = append(order, op)
			}

			if err := byOp[op].Update([]float64{f}, []float64{g}); err != nil {
				return nil, err
			}
		}
	}

	if len(order) == 0 {
		return nil, errors.Errorf("cannot compare table %s with table %s: no common rows", baseline.Table.ID, candidate.Table.ID)
	}

	out := make([]*stats.DeltaStats, len(order))
	for i, op := range order {
		if err := byOp[op].Finalize(); err != nil {
			return nil, err
		}
		out[i] = byOp[op]
	}

	return out, nil
}
