package service

import (
	"fmt"
	"math/big"
	"sort"
)

// QueryResult is an ordered tabular result. Columns preserves the
// left-to-right order the warehouse returned; each row maps column name
// to a scalar value.
type QueryResult struct {
	Columns []string
	Rows    []map[string]any
}

// Empty reports whether the result is absent or has zero rows. Absent
// (execution failure) and empty (zero matching rows) both sanitize to
// empty; the distinction is the caller's to log, not the frontend's.
func (r *QueryResult) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// Sanitize normalizes a raw result into the frontend-safe shape: every
// column is renamed by role, numeric columns to value, value_2, … and
// all others to label, label_2, … in first-seen order. Cell values are
// left untouched; type coercion happens at the serialization boundary.
// Returns nil for an absent or zero-row input. The renaming is
// idempotent: sanitizing an already-sanitized result is a no-op.
func Sanitize(res *QueryResult) *QueryResult {
	if res.Empty() {
		return nil
	}

	cols := res.Columns
	if len(cols) == 0 {
		// No schema from the executor; fall back to sorted row keys so
		// the rename stays deterministic.
		for k := range res.Rows[0] {
			cols = append(cols, k)
		}
		sort.Strings(cols)
	}

	rename := make(map[string]string, len(cols))
	renamed := make([]string, 0, len(cols))
	numericSeen, labelSeen := 0, 0
	for _, col := range cols {
		var name string
		if columnIsNumeric(res.Rows, col) {
			numericSeen++
			name = roleName("value", numericSeen)
		} else {
			labelSeen++
			name = roleName("label", labelSeen)
		}
		rename[col] = name
		renamed = append(renamed, name)
	}

	rows := make([]map[string]any, len(res.Rows))
	for i, row := range res.Rows {
		m := make(map[string]any, len(row))
		for _, col := range cols {
			m[rename[col]] = row[col]
		}
		rows[i] = m
	}

	return &QueryResult{Columns: renamed, Rows: rows}
}

func roleName(role string, n int) string {
	if n == 1 {
		return role
	}
	return fmt.Sprintf("%s_%d", role, n)
}

// columnIsNumeric inspects the first non-nil cell of the column. No
// value parsing: a string holding digits is still a label.
func columnIsNumeric(rows []map[string]any, col string) bool {
	for _, row := range rows {
		v, ok := row[col]
		if !ok || v == nil {
			continue
		}
		switch v.(type) {
		case int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64, *big.Rat, *big.Float:
			return true
		default:
			return false
		}
	}
	return false
}
