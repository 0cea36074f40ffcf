package models_test

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/aicockpit/aicockpit/internal/models"
)

// Every envelope carries all six fields; absent ones serialize as null.
func TestAskResponse_EnvelopeShape(t *testing.T) {
	tests := []struct {
		name string
		resp *models.AskResponse
		typ  string
	}{
		{"chat", models.ChatAnswer("สวัสดีค่ะ"), "chat"},
		{"error", models.ErrorAnswer("ขออภัย"), "error"},
		{"data", models.DataAnswer("ok", "SELECT 1", nil, nil, nil), "data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.resp)
			if err != nil {
				t.Fatal(err)
			}
			var m map[string]json.RawMessage
			if err := json.Unmarshal(raw, &m); err != nil {
				t.Fatal(err)
			}
			for _, key := range []string{"type", "message", "sql", "data", "analysis", "chart"} {
				if _, ok := m[key]; !ok {
					t.Errorf("envelope missing %q: %s", key, raw)
				}
			}
			var typ string
			if err := json.Unmarshal(m["type"], &typ); err != nil || typ != tt.typ {
				t.Errorf("type = %q, want %q", typ, tt.typ)
			}
		})
	}
}

func TestDataAnswer_EmptyRowsNotNull(t *testing.T) {
	resp := models.DataAnswer("ok", "SELECT 1", nil, nil, nil)
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"data":[]`) {
		t.Errorf("executed-but-empty must serialize data as [], got %s", raw)
	}
	if !strings.Contains(string(raw), `"analysis":null`) || !strings.Contains(string(raw), `"chart":null`) {
		t.Errorf("absent enrichment must serialize as null, got %s", raw)
	}
}

func TestEncodeRows_CoercesWarehouseScalars(t *testing.T) {
	ts := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	rows := []map[string]any{{
		"label":   "A",
		"value":   big.NewRat(1, 3),
		"when":    ts,
		"day":     civil.Date{Year: 2024, Month: 5, Day: 1},
		"blob":    []byte("hello"),
		"nothing": nil,
		"count":   int64(7),
	}}

	out := models.EncodeRows(rows)
	if len(out) != 1 {
		t.Fatalf("rows = %d, want 1", len(out))
	}
	row := out[0]
	if row["value"] != "0.333333333" {
		t.Errorf("big.Rat = %v, want 0.333333333", row["value"])
	}
	if row["when"] != "2024-05-01T09:30:00Z" {
		t.Errorf("time = %v", row["when"])
	}
	if row["day"] != "2024-05-01" {
		t.Errorf("date = %v", row["day"])
	}
	if row["blob"] != "hello" {
		t.Errorf("bytes = %v", row["blob"])
	}
	if row["nothing"] != nil {
		t.Errorf("nil = %v, want nil", row["nothing"])
	}
	if row["count"] != int64(7) {
		t.Errorf("int64 = %v, want passthrough", row["count"])
	}

	// input untouched
	if _, ok := rows[0]["value"].(*big.Rat); !ok {
		t.Error("EncodeRows must not mutate its input")
	}
}

func TestAskRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		question string
		wantOK   bool
	}{
		{"ok", "ยอดขายเดือนนี้เท่าไหร่", true},
		{"empty", "", false},
		{"whitespace", "   \n", false},
		{"too long", strings.Repeat("ก", 2001), false},
		{"at limit", strings.Repeat("ก", 2000), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.AskRequest{Question: tt.question}
			msg := req.Validate()
			if (msg == "") != tt.wantOK {
				t.Errorf("Validate() = %q, wantOK=%v", msg, tt.wantOK)
			}
		})
	}
}
