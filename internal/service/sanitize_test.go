package service_test

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/aicockpit/aicockpit/internal/service"
)

func TestSanitize_RenamesByRole(t *testing.T) {
	res := &service.QueryResult{
		Columns: []string{"product_name", "total_sales", "region", "order_count"},
		Rows: []map[string]any{
			{"product_name": "เสื้อยืด", "total_sales": 1500.5, "region": "north", "order_count": int64(42)},
			{"product_name": "กางเกง", "total_sales": 900.0, "region": "south", "order_count": int64(17)},
		},
	}

	got := service.Sanitize(res)
	if got == nil {
		t.Fatal("Sanitize returned nil for non-empty result")
	}
	wantCols := []string{"label", "value", "label_2", "value_2"}
	if !reflect.DeepEqual(got.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", got.Columns, wantCols)
	}
	if got.Rows[0]["label"] != "เสื้อยืด" {
		t.Errorf("label = %v, want เสื้อยืด", got.Rows[0]["label"])
	}
	if got.Rows[0]["value"] != 1500.5 {
		t.Errorf("value = %v, want 1500.5", got.Rows[0]["value"])
	}
	if got.Rows[1]["value_2"] != int64(17) {
		t.Errorf("value_2 = %v, want 17", got.Rows[1]["value_2"])
	}
}

func TestSanitize_EmptyInputs(t *testing.T) {
	if got := service.Sanitize(nil); got != nil {
		t.Errorf("Sanitize(nil) = %v, want nil", got)
	}
	empty := &service.QueryResult{Columns: []string{"a"}}
	if got := service.Sanitize(empty); got != nil {
		t.Errorf("Sanitize(zero rows) = %v, want nil", got)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	res := &service.QueryResult{
		Columns: []string{"city", "revenue"},
		Rows: []map[string]any{
			{"city": "Bangkok", "revenue": 100.0},
		},
	}
	once := service.Sanitize(res)
	twice := service.Sanitize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second sanitize changed the result: %v vs %v", once, twice)
	}
}

func TestSanitize_NumericDetection(t *testing.T) {
	rat := big.NewRat(355, 113)
	res := &service.QueryResult{
		Columns: []string{"code", "ratio", "note"},
		Rows: []map[string]any{
			{"code": "12345", "ratio": rat, "note": nil},
			{"code": "67890", "ratio": big.NewRat(1, 2), "note": "late"},
		},
	}
	got := service.Sanitize(res)
	wantCols := []string{"label", "value", "label_2"}
	if !reflect.DeepEqual(got.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", got.Columns, wantCols)
	}
	// A string of digits stays a label; the big.Rat is numeric; a column
	// whose first non-nil cell is a string is a label.
	if got.Rows[0]["value"] != rat {
		t.Errorf("value cell should pass through untouched, got %v", got.Rows[0]["value"])
	}
}

func TestSanitize_NoSchemaFallsBackToSortedKeys(t *testing.T) {
	res := &service.QueryResult{
		Rows: []map[string]any{
			{"b_count": int64(1), "a_name": "x"},
		},
	}
	got := service.Sanitize(res)
	wantCols := []string{"label", "value"}
	if !reflect.DeepEqual(got.Columns, wantCols) {
		t.Errorf("columns = %v, want %v", got.Columns, wantCols)
	}
}

func TestQueryResult_Empty(t *testing.T) {
	var nilRes *service.QueryResult
	if !nilRes.Empty() {
		t.Error("nil result should be empty")
	}
	if !(&service.QueryResult{}).Empty() {
		t.Error("zero-row result should be empty")
	}
	full := &service.QueryResult{Rows: []map[string]any{{"a": 1}}}
	if full.Empty() {
		t.Error("one-row result should not be empty")
	}
}
