// Package taxtable holds the simplified withholding tax tables, one per tax
// year. A table maps a monthly taxable salary band (in thousands of won) and a
// dependent count to the monthly income tax.
package taxtable

import (
	"embed"
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// Columns is the number of dependent-count columns in every table row.
const Columns = 11

//go:embed data/*.json
var dataFS embed.FS

var (
	ErrUnknownYear    = errors.New("no withholding table for tax year")
	ErrMalformedTable = errors.New("malformed withholding table")
)

type LookupStatus int

const (
	Covered LookupStatus = iota
	BelowMinimum
	AboveMaximum
)

func (s LookupStatus) String() string {
	switch s {
	case Covered:
		return "covered"
	case BelowMinimum:
		return "below_minimum"
	case AboveMaximum:
		return "above_maximum"
	default:
		return "unknown"
	}
}

// Bracket is one row: MinThousands <= salary < MaxThousands.
type Bracket struct {
	MinThousands int64
	MaxThousands int64
	Tax          [Columns]int64
}

// Amount returns the tax for a dependent count, clamped to [1, Columns].
func (b Bracket) Amount(dependents int) int64 {
	return b.Tax[ClampDependents(dependents)-1]
}

// Table is immutable once parsed and safe for concurrent use.
type Table struct {
	Year     int
	Unit     int64
	brackets []Bracket
}

type tableFile struct {
	Year     int       `json:"year"`
	Unit     int64     `json:"unit"`
	Columns  int       `json:"columns"`
	Brackets [][]int64 `json:"brackets"`
}

// Load returns the embedded table for a tax year.
func Load(year int) (*Table, error) {
	raw, err := dataFS.ReadFile(fmt.Sprintf("data/%d.json", year))
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownYear, year)
	}
	return Parse(raw)
}

// Years lists the tax years with an embedded table, ascending.
func Years() []int {
	entries, err := dataFS.ReadDir("data")
	if err != nil {
		return nil
	}
	var years []int
	for _, entry := range entries {
		var year int
		if _, err := fmt.Sscanf(entry.Name(), "%d.json", &year); err == nil {
			years = append(years, year)
		}
	}
	sort.Ints(years)
	return years
}

// Parse decodes and validates a table document. Rows must be sorted,
// contiguous and non-overlapping.
func Parse(raw []byte) (*Table, error) {
	var file tableFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	if file.Columns != Columns {
		return nil, fmt.Errorf("%w: expected %d dependent columns, got %d", ErrMalformedTable, Columns, file.Columns)
	}
	if len(file.Brackets) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedTable)
	}
	unit := file.Unit
	if unit == 0 {
		unit = 1000
	}

	table := &Table{Year: file.Year, Unit: unit, brackets: make([]Bracket, 0, len(file.Brackets))}
	for i, row := range file.Brackets {
		if len(row) != Columns+2 {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrMalformedTable, i, len(row))
		}
		b := Bracket{MinThousands: row[0], MaxThousands: row[1]}
		if b.MaxThousands <= b.MinThousands {
			return nil, fmt.Errorf("%w: row %d has empty band [%d, %d)", ErrMalformedTable, i, b.MinThousands, b.MaxThousands)
		}
		if i > 0 {
			prev := table.brackets[i-1]
			if b.MinThousands != prev.MaxThousands {
				return nil, fmt.Errorf("%w: row %d starts at %d, previous ends at %d", ErrMalformedTable, i, b.MinThousands, prev.MaxThousands)
			}
		}
		for col := 0; col < Columns; col++ {
			if row[col+2] < 0 {
				return nil, fmt.Errorf("%w: row %d has negative tax", ErrMalformedTable, i)
			}
			b.Tax[col] = row[col+2]
		}
		table.brackets = append(table.brackets, b)
	}
	return table, nil
}

// MinThousands is the lower bound of the first band.
func (t *Table) MinThousands() int64 {
	return t.brackets[0].MinThousands
}

// MaxThousands is the exclusive upper bound of the last band.
func (t *Table) MaxThousands() int64 {
	return t.brackets[len(t.brackets)-1].MaxThousands
}

// Top is the last row, used for extrapolation above the table.
func (t *Table) Top() Bracket {
	return t.brackets[len(t.brackets)-1]
}

func (t *Table) Len() int {
	return len(t.brackets)
}

// Find returns the row covering salaryThousands.
func (t *Table) Find(salaryThousands int64) (Bracket, LookupStatus) {
	if salaryThousands < t.MinThousands() {
		return Bracket{}, BelowMinimum
	}
	if salaryThousands >= t.MaxThousands() {
		return t.Top(), AboveMaximum
	}
	i := sort.Search(len(t.brackets), func(i int) bool {
		return t.brackets[i].MaxThousands > salaryThousands
	})
	return t.brackets[i], Covered
}

// Lookup returns the table amount for a salary band and dependent count.
// Below the first band the amount is 0. Above the last band the top row's
// amount is returned with AboveMaximum; extrapolating the excess is the
// caller's concern.
func (t *Table) Lookup(salaryThousands int64, dependents int) (int64, LookupStatus) {
	row, status := t.Find(salaryThousands)
	if status == BelowMinimum {
		return 0, status
	}
	return row.Amount(dependents), status
}

func ClampDependents(dependents int) int {
	if dependents < 1 {
		return 1
	}
	if dependents > Columns {
		return Columns
	}
	return dependents
}
