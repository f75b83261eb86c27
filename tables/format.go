package tables

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// SignificantDigits is the number of significant digits of real values.
const SignificantDigits = 15

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FormatSignificant formats x with the given number of significant digits,
// keeping trailing zeros.
func FormatSignificant(x *big.Float, digits int) string {
	abs := new(big.Float).Abs(x)

	var intDigits int
	if abs.Cmp(big.NewFloat(1)) >= 0 {
		i, _ := abs.Int(nil)
		intDigits = len(i.String())
	}

	decimals := digits - intDigits
	if decimals < 0 {
		decimals = 0
	}

	return x.Text('f', decimals)
}

// Format formats the values of the row.
func (table Table) Format(row Row) []string {
	s := make([]string, len(row.Values))
	for i, v := range row.Values {
		if table.Output == OutputBudget && !table.Variant.RealBudget() {
			s[i] = v.Text('f', 0)
		} else {
			s[i] = FormatSignificant(v, SignificantDigits)
		}
	}
	return s
}

// Tuple returns the values of the row as "(v0, v1, ...)".
func (table Table) Tuple(row Row) string {
	return "(" + strings.Join(table.Format(row), ", ") + ")"
}

// Budgets returns the values of a budget row as integers.
func (row Row) Budgets() []int64 {
	b := make([]int64, len(row.Values))
	for i, v := range row.Values {
		b[i], _ = v.Int64()
	}
	return b
}

// Float64 returns the values of the row as float64.
func (row Row) Float64() []float64 {
	f := make([]float64, len(row.Values))
	for i, v := range row.Values {
		f[i], _ = v.Float64()
	}
	return f
}

// WriteText writes the results the way the paper's scripts print them.
func WriteText(w io.Writer, results []Result) (err error) {
	for _, res := range results {
		if _, err = fmt.Fprintf(w, "Table %s: %s (%s)\n", res.Table.ID, res.Table.Title, res.Table.Variant); err != nil {
			return
		}

		for _, row := range res.Rows {
			header := "n: " + strconv.Itoa(row.N)
			if res.Table.TLabel != "" {
				header += ", t: " + res.Table.TLabel
			}

			if _, err = fmt.Fprintf(w, "%s\n%s\n", header, res.Table.Tuple(row)); err != nil {
				return
			}
		}
	}
	return
}

// CSVHeader is the header of WriteCSV.
var CSVHeader = []string{"table", "variant", "n", "t", "op", "value"}

// WriteCSV writes one record per reported step.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return errors.Wrap(err, "cannot write csv header")
	}

	for _, res := range results {
		for _, row := range res.Rows {
			values := res.Table.Format(row)
			for i, op := range row.Ops {
				if err := cw.Write([]string{
					res.Table.ID,
					res.Table.Variant.String(),
					strconv.Itoa(row.N),
					strconv.FormatUint(row.T, 10),
					op.String(),
					values[i],
				}); err != nil {
					return errors.Wrap(err, "cannot write csv record")
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

type jsonRow struct {
	N      int      `json:"n"`
	T      uint64   `json:"t"`
	Ops    []string `json:"ops"`
	Values []string `json:"values"`
}

type jsonResult struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Variant string    `json:"variant"`
	Rows    []jsonRow `json:"rows"`
}

// WriteJSON writes the results as a JSON array. Values are strings
// so that no precision is lost.
func WriteJSON(w io.Writer, results []Result) error {
	out := make([]jsonResult, len(results))
	for i, res := range results {
		out[i] = jsonResult{
			ID:      res.Table.ID,
			Title:   res.Table.Title,
			Variant: res.Table.Variant.String(),
			Rows:    make([]jsonRow, len(res.Rows)),
		}
		for j, row := range res.Rows {
			ops := make([]string, len(row.Ops))
			for k, op := range row.Ops {
				ops[k] = op.String()
			}
			out[i].Rows[j] = jsonRow{N: row.N, T: row.T, Ops: ops, Values: res.Table.Format(row)}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(out), "cannot encode json")
}
