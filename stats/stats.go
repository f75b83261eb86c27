package stats

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

var Header = []string{
	"OP",
	"COUNT",
	"MIN",
	"AVG",
	"MED",
	"MAX",
	"STD",
}

// DeltaStats is a struct storing statistics about the difference between the
// values two noise models report for the same operation.
type DeltaStats struct {
	Op          string
	MinDelta    float64
	MeanDelta   float64
	MedianDelta float64
	MaxDelta    float64
	StdDelta    float64

	diff []float64
}

func NewDeltaStats(op string) *DeltaStats {
	return &DeltaStats{
		Op:   op,
		diff: []float64{},
	}
}

// Update records candidate - baseline for each pair of values.
func (d *DeltaStats) Update(baseline, candidate []float64) error {
	if len(baseline) != len(candidate) {
		return errors.Errorf("cannot Update: len(baseline)=%d != len(candidate)=%d", len(baseline), len(candidate))
	}

	for i := range baseline {
		d.diff = append(d.diff, candidate[i]-baseline[i])
	}

	return nil
}

// Count returns the number of recorded differences.
func (d *DeltaStats) Count() int {
	return len(d.diff)
}

func (d *DeltaStats) Finalize() (err error) {
	if len(d.diff) == 0 {
		return errors.Errorf("cannot Finalize %s: no recorded values", d.Op)
	}

	data := stats.Float64Data(d.diff)

	if d.MinDelta, err = data.Min(); err != nil {
		return errors.Wrap(err, "min")
	}

	if d.MeanDelta, err = data.Mean(); err != nil {
		return errors.Wrap(err, "mean")
	}

	if d.MedianDelta, err = data.Median(); err != nil {
		return errors.Wrap(err, "median")
	}

	if d.MaxDelta, err = data.Max(); err != nil {
		return errors.Wrap(err, "max")
	}

	// population, not sample
	if d.StdDelta, err = data.StandardDeviationPopulation(); err != nil {
		return errors.Wrap(err, "std")
	}

	return nil
}

func (d *DeltaStats) ToCSV() []string {
	return []string{
		d.Op,
		fmt.Sprintf("%d", len(d.diff)),
		fmt.Sprintf("%.4f", d.MinDelta),
		fmt.Sprintf("%.4f", d.MeanDelta),
		fmt.Sprintf("%.4f", d.MedianDelta),
		fmt.Sprintf("%.4f", d.MaxDelta),
		fmt.Sprintf("%.4f", d.StdDelta),
	}
}
