package tables

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/he-noise-heuristics/estimator"
)

func run(t *testing.T, id string) Result {
	selected, err := Lookup(id)
	require.NoError(t, err)
	res, err := NewDriver(DefaultCatalogue(), nil).Run(selected[0])
	require.NoError(t, err)
	return res
}

func TestBudgetTables(t *testing.T) {
	for _, tc := range []struct {
		id   string
		want [][]int64
	}{
		{"2", [][]int64{{37, 36, 19}, {93, 92, 75, 42}, {205, 204, 186, 153}, {427, 426, 408, 376}}},
		{"2i", [][]int64{{35, 34, 16}, {89, 88, 69, 39}, {197, 196, 176, 147}, {416, 415, 394, 366}}},
		{"3", [][]int64{{27, 26, 0}, {81, 80, 51, 31}, {189, 188, 157, 139}, {408, 407, 375, 358}}},
		{"3i", [][]int64{{29, 28, 7, 7}, {83, 82, 60, 60, 33}, {191, 190, 167, 167, 141}, {410, 409, 385, 385, 360}}},
		{"4", [][]int64{{19, 18, 0}, {71, 70, 32, 23}, {179, 178, 139, 131}, {398, 397, 356, 350}}},
		{"4i", [][]int64{{20, 19, 1, 1}, {71, 70, 41, 41, 25}, {179, 178, 148, 148, 133}, {398, 397, 366, 366, 352}}},
		{"5", [][]int64{{37, 36, 19}, {93, 92, 75, 42}, {205, 204, 186, 153}, {427, 426, 408, 376}}},
	} {
		t.Run("Table="+tc.id, func(t *testing.T) {
			res := run(t, tc.id)

			have := make([][]int64, len(res.Rows))
			for i, row := range res.Rows {
				have[i] = row.Budgets()
			}

			if diff := cmp.Diff(tc.want, have); diff != "" {
				t.Errorf("table %s mismatch (-want +have):\n%s", tc.id, diff)
			}
		})
	}
}

func requireRows(t *testing.T, want [][]float64, res Result, delta float64) {
	require.Len(t, res.Rows, len(want))
	for i, row := range res.Rows {
		have := row.Float64()
		require.Len(t, have, len(want[i]), "N=%d", row.N)
		for j := range have {
			require.InDelta(t, want[i][j], have[j], delta, "N=%d, %s", row.N, row.Ops[j])
		}
	}
}

func TestLogTables(t *testing.T) {

	t.Run("Table=1", func(t *testing.T) {
		requireRows(t, [][]float64{
			{16.79492863977782, 17.79492863977782, 34.58985727955564},
			{17.29492863977782, 18.29492863977782, 35.58985727955564, 12.858570440959433},
			{17.79492863977782, 18.79492863977782, 36.58985727955564, 13.358570441047348},
			{18.29492863977782, 19.29492863977782, 37.58985727955564, 13.858570441132475},
		}, run(t, "1"), 1e-9)
	})

	t.Run("Table=1i", func(t *testing.T) {
		res := run(t, "1i")
		requireRows(t, [][]float64{
			{17.5721332966680, 18.5721332966680, 36.1442665933360},
		}, Result{Table: res.Table, Rows: res.Rows[:1]}, 1e-12)
		requireRows(t, [][]float64{
			{18.5659755402598, 19.5659755402598, 38.1319510805196, 14.1123099915160},
		}, Result{Table: res.Table, Rows: res.Rows[1:2]}, 1e-8)
	})
}

func TestScaledInherentTables(t *testing.T) {

	t.Run("Table=6", func(t *testing.T) {
		requireRows(t, [][]float64{
			{27.611622571573555, 26.61063420181867, 0, 0},
			{81.61375752685373, 80.61305753893416, 51.07229573795036, 51.07222114209965, 31.28057416013319},
			{189.61526907558743, 188.61477355540615, 157.57736567589063, 157.57731274257017, 139.2840481345961},
			{408.61633885591857, 407.6159881927195, 375.0809320543205, 375.08089453196897, 358.2865035197806},
		}, run(t, "6"), 1e-9)
	})

	t.Run("Table=7", func(t *testing.T) {
		requireRows(t, [][]float64{
			{19.611599870020925, 18.432385868795826, 0, 0},
			{73.61373551324237, 69.64332980692846, 31.969161968662263, 31.969161934750048, 22.903948822706752},
			{181.61524706197608, 178.06878005510706, 138.90431844667063, 138.9043184142489, 126.20540109616215},
			{400.61631684230724, 396.6582524773022, 355.9899001289517, 355.9899001117501, 343.6778215395942},
		}, run(t, "7"), 1e-9)
	})
}

func TestArity(t *testing.T) {
	results, err := NewDriver(DefaultCatalogue(), nil).RunAll(Paper)
	require.NoError(t, err)
	require.Len(t, results, len(Paper))

	for _, res := range results {
		require.Len(t, res.Rows, 4, res.Table.ID)
		for _, row := range res.Rows {
			want := len(res.Table.Steps)
			if row.N != 2048 {
				want++
				require.Equal(t, estimator.OpModSwitch, row.Ops[len(row.Ops)-1], res.Table.ID)
			}
			require.Len(t, row.Values, want, "table %s, N=%d", res.Table.ID, row.N)
			require.Len(t, row.Ops, want, "table %s, N=%d", res.Table.ID, row.N)
		}
	}
}

func TestLookup(t *testing.T) {
	all, err := Lookup()
	require.NoError(t, err)
	require.Len(t, all, 11)

	selected, err := Lookup("4i", "1")
	require.NoError(t, err)
	require.Equal(t, "4i", selected[0].ID)
	require.Equal(t, "1", selected[1].ID)

	_, err = Lookup("8")
	require.Error(t, err)
}

func TestCatalogue(t *testing.T) {

	t.Run("Default", func(t *testing.T) {
		c := DefaultCatalogue()
		require.Equal(t, estimator.DefaultLogW, c.LogW)

		for _, group := range []string{"helib", "seal"} {
			sets, err := c.Group(group)
			require.NoError(t, err)
			require.Len(t, sets, 4)
			require.True(t, sets[0].P.IsZero(), group)
		}

		helib, _ := c.Group("helib")
		require.False(t, helib[1].Q.IsExact())

		seal, _ := c.Group("seal")
		require.True(t, seal[3].Q.IsExact())
		require.True(t, seal[3].P.IsExact())

		_, err := c.Group("tfhe")
		require.Error(t, err)
	})

	t.Run("Override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "params.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
groups:
  seal:
    - n: 2048
      q: "18014398492704769"
      p: "0"
`), 0o600))

		c, err := LoadCatalogue(path)
		require.NoError(t, err)
		require.Equal(t, estimator.DefaultLogW, c.LogW)

		selected, err := Lookup("4i")
		require.NoError(t, err)

		res, err := NewDriver(c, nil).Run(selected[0])
		require.NoError(t, err)
		require.Len(t, res.Rows, 1)

		if diff := cmp.Diff([]int64{20, 19, 1, 1}, res.Rows[0].Budgets()); diff != "" {
			t.Errorf("mismatch (-want +have):\n%s", diff)
		}

		// the helib group is absent
		selected, err = Lookup("2")
		require.NoError(t, err)
		_, err = NewDriver(c, nil).Run(selected[0])
		require.Error(t, err)
	})

	t.Run("Invalid", func(t *testing.T) {
		for name, b := range map[string]string{
			"Yaml":    "groups: [",
			"Modulus": "groups:\n  seal:\n    - n: 2048\n      q: abc\n",
			"P":       "groups:\n  seal:\n    - n: 2048\n      q: \"17\"\n      p: 2^x\n",
		} {
			_, err := ParseCatalogue([]byte(b))
			require.Error(t, err, name)
		}

		_, err := LoadCatalogue(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("InvalidParameters", func(t *testing.T) {
		c, err := ParseCatalogue([]byte("groups:\n  seal:\n    - n: 3000\n      q: \"18014398492704769\"\n"))
		require.NoError(t, err)

		selected, err := Lookup("3")
		require.NoError(t, err)
		_, err = NewDriver(c, nil).Run(selected[0])
		require.Error(t, err)
	})
}

func TestDriverLogging(t *testing.T) {
	buf := new(bytes.Buffer)
	log := zerolog.New(buf).Level(zerolog.DebugLevel)

	selected, err := Lookup("3")
	require.NoError(t, err)

	_, err = NewDriver(DefaultCatalogue(), &log).Run(selected[0])
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], `"table":"3"`)
	require.Contains(t, lines[0], `"variant":"fv-old"`)
	require.Contains(t, lines[0], `"n":2048`)
	require.Contains(t, lines[0], `"arity":3`)
	require.Contains(t, lines[3], `"arity":4`)
}

func TestFormat(t *testing.T) {

	t.Run("Significant", func(t *testing.T) {
		for _, tc := range []struct {
			x    float64
			want string
		}{
			{17.572133296668007, "17.5721332966680"},
			{0, "0.000000000000000"},
			{0.5, "0.500000000000000"},
			{408.61633885591857, "408.616338855919"},
			{-12.5, "-12.5000000000000"},
		} {
			require.Equal(t, tc.want, FormatSignificant(estimator.NewFloat(tc.x), SignificantDigits))
		}
	})

	t.Run("Text", func(t *testing.T) {
		results, err := NewDriver(DefaultCatalogue(), nil).RunAll([]Table{Paper[3], Paper[6]})
		require.NoError(t, err)

		buf := new(bytes.Buffer)
		require.NoError(t, WriteText(buf, results))

		lines := strings.Split(buf.String(), "\n")
		require.Equal(t, "Table 2i: HElib noise budget (Iliashenko) (bgv-iliashenko)", lines[0])
		require.Equal(t, "n: 2048", lines[1])
		require.Equal(t, "(35, 34, 16)", lines[2])
		require.Equal(t, "n: 4096", lines[3])
		require.Equal(t, "(89, 88, 69, 39)", lines[4])
		require.Equal(t, "Table 4: SEAL invariant noise budget (fv-old)", lines[9])
		require.Equal(t, "n: 2048, t: batch", lines[10])
		require.Equal(t, "(19, 18, 0)", lines[11])
	})

	t.Run("Real", func(t *testing.T) {
		res := run(t, "6")
		require.Equal(t,
			"(27.6116225715736, 26.6106342018187, 0.000000000000000, 0.000000000000000)",
			res.Table.Tuple(res.Rows[0]))
	})

	t.Run("CSV", func(t *testing.T) {
		results, err := NewDriver(DefaultCatalogue(), nil).RunAll([]Table{Paper[4]})
		require.NoError(t, err)

		buf := new(bytes.Buffer)
		require.NoError(t, WriteCSV(buf, results))

		records, err := csv.NewReader(buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1+3+4+4+4)
		require.Equal(t, CSVHeader, records[0])
		require.Equal(t, []string{"3", "fv-old", "2048", "256", "fresh", "27"}, records[1])
		require.Equal(t, []string{"3", "fv-old", "16384", "256", "mod_switch", "358"}, records[len(records)-1])
	})

	t.Run("JSON", func(t *testing.T) {
		results, err := NewDriver(DefaultCatalogue(), nil).RunAll([]Table{Paper[7]})
		require.NoError(t, err)

		buf := new(bytes.Buffer)
		require.NoError(t, WriteJSON(buf, results))

		var out []jsonResult
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		require.Len(t, out, 1)
		require.Equal(t, "4i", out[0].ID)
		require.Equal(t, "fv-iliashenko", out[0].Variant)
		require.Equal(t, jsonRow{
			N:      2048,
			T:      65537,
			Ops:    []string{"fresh", "add", "mult", "relin"},
			Values: []string{"20", "19", "1", "1"},
		}, out[0].Rows[0])
	})
}

func TestCompare(t *testing.T) {
	results, err := NewDriver(DefaultCatalogue(), nil).RunAll([]Table{Paper[4], Paper[5]})
	require.NoError(t, err)

	deltas, err := Compare(results[0], results[1])
	require.NoError(t, err)
	require.Len(t, deltas, 4)

	ops := make([]string, len(deltas))
	for i, d := range deltas {
		ops[i] = d.Op
	}
	require.Equal(t, []string{"fresh", "add", "mult", "mod_switch"}, ops)

	require.Equal(t, 4, deltas[0].Count())
	require.Equal(t, 2.0, deltas[0].MinDelta)
	require.Equal(t, 2.0, deltas[0].MaxDelta)
	require.Zero(t, deltas[0].StdDelta)

	// 7, 9, 10, 10
	require.Equal(t, 7.0, deltas[2].MinDelta)
	require.Equal(t, 10.0, deltas[2].MaxDelta)
	require.Equal(t, 9.0, deltas[2].MeanDelta)
	require.Equal(t, 9.5, deltas[2].MedianDelta)

	require.Equal(t, 3, deltas[3].Count())

	_, err = Compare(results[0], run(t, "1"))
	require.Error(t, err)
}
