package tables

import (
	"github.com/pkg/errors"

	"github.com/tuneinsight/he-noise-heuristics/estimator"
)

const (
	// THElib is the plaintext modulus of the HElib experiments.
	THElib = 3
	// TBinary is the plaintext modulus of SEAL with binary encoding.
	TBinary = 256
	// TBatch is the plaintext modulus of SEAL with batching.
	TBatch = 65537
)

var (
	stepsNoRelin = []estimator.Op{estimator.OpFresh, estimator.OpAdd, estimator.OpMul}
	stepsRelin   = []estimator.Op{estimator.OpFresh, estimator.OpAdd, estimator.OpMul, estimator.OpRelinearize}
)

// Paper lists the tables of the paper in print order.
var Paper = []Table{
	{
		ID:             "1",
		Title:          "HElib noise",
		Variant:        estimator.BGVOld,
		Group:          "helib",
		T:              THElib,
		Output:         OutputLog2,
		Steps:          stepsNoRelin,
		ModSwitchInput: estimator.OpMul,
	},
	{
		ID:             "1i",
		Title:          "HElib noise (Iliashenko)",
		Variant:        estimator.BGVIliashenko,
		Group:          "seal",
		T:              THElib,
		Output:         OutputLog2,
		Steps:          stepsNoRelin,
		ModSwitchInput: estimator.OpMul,
	},
	{
		ID:             "2",
		Title:          "HElib noise budget",
		Variant:        estimator.BGVOld,
		Group:          "helib",
		T:              THElib,
		Output:         OutputBudget,
		Steps:          stepsNoRelin,
		ModSwitchInput: estimator.OpMul,
	},
	{
		ID:             "2i",
		Title:          "HElib noise budget (Iliashenko)",
		Variant:        estimator.BGVIliashenko,
		Group:          "seal",
		T:              THElib,
		Output:         OutputBudget,
		Steps:          stepsNoRelin,
		ModSwitchInput: estimator.OpMul,
	},
	{
		ID:             "3",
		Title:          "SEAL invariant noise budget",
		Variant:        estimator.FVOld,
		Group:          "seal",
		T:              TBinary,
		TLabel:         "binary",
		Output:         OutputBudget,
		Steps:          stepsNoRelin,
		ModSwitchInput: estimator.OpRelinearize,
	},
	{
		ID:             "3i",
		Title:          "SEAL invariant noise budget (Iliashenko)",
		Variant:        estimator.FVIliashenko,
		Group:          "seal",
		T:              TBinary,
		TLabel:         "binary",
		Output:         OutputBudget,
		Steps:          stepsRelin,
		ModSwitchInput: estimator.OpRelinearize,
	},
	{
		ID:             "4",
		Title:          "SEAL invariant noise budget",
		Variant:        estimator.FVOld,
		Group:          "seal",
		T:              TBatch,
		TLabel:         "batch",
		Output:         OutputBudget,
		Steps:          stepsNoRelin,
		ModSwitchInput: estimator.OpRelinearize,
	},
	{
		ID:             "4i",
		Title:          "SEAL invariant noise budget (Iliashenko)",
		Variant:        estimator.FVIliashenko,
		Group:          "seal",
		T:              TBatch,
		TLabel:         "batch",
		Output:         OutputBudget,
		Steps:          stepsRelin,
		ModSwitchInput: estimator.OpRelinearize,
	},
	{
		ID:             "5",
		Title:          "HElib invariant noise budget",
		Variant:        estimator.BGVInvariant,
		Group:          "helib",
		T:              THElib,
		Output:         OutputBudget,
		Steps:          stepsNoRelin,
		ModSwitchInput: estimator.OpMul,
	},
	{
		ID:             "6",
		Title:          "SEAL scaled inherent noise budget",
		Variant:        estimator.FVScaledInherent,
		Group:          "seal",
		T:              TBinary,
		TLabel:         "binary",
		Output:         OutputBudget,
		Steps:          stepsRelin,
		ModSwitchInput: estimator.OpRelinearize,
	},
	{
		ID:             "7",
		Title:          "SEAL scaled inherent noise budget",
		Variant:        estimator.FVScaledInherent,
		Group:          "seal",
		T:              TBatch,
		TLabel:         "batch",
		Output:         OutputBudget,
		Steps:          stepsRelin,
		ModSwitchInput: estimator.OpRelinearize,
	},
}

// Lookup returns the tables of Paper with the given ids, in the given order.
// It returns all of Paper if ids is empty.
func Lookup(ids ...string) ([]Table, error) {
	if len(ids) == 0 {
		return Paper, nil
	}

	byID := make(map[string]Table, len(Paper))
	for _, table := range Paper {
		byID[table.ID] = table
	}

	tables := make([]Table, 0, len(ids))
	for _, id := range ids {
		table, ok := byID[id]
		if !ok {
			return nil, errors.Errorf("unknown table %q", id)
		}
		tables = append(tables, table)
	}

	return tables, nil
}
