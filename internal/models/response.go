package models

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/civil"
)

// AnswerType discriminates the three terminal envelopes of the pipeline.
type AnswerType string

const (
	AnswerChat  AnswerType = "chat"
	AnswerData  AnswerType = "data"
	AnswerError AnswerType = "error"
)

// AskResponse is the single envelope returned by POST /api/chat.
// Every field is always present; fields that do not apply to the
// envelope's type are null so the frontend can branch on Type alone.
type AskResponse struct {
	Type     AnswerType       `json:"type"`
	Message  string           `json:"message"`
	SQL      *string          `json:"sql"`
	Data     []map[string]any `json:"data"`
	Analysis *string          `json:"analysis"`
	Chart    json.RawMessage  `json:"chart"`
}

// ChatAnswer builds a conversational reply envelope.
func ChatAnswer(message string) *AskResponse {
	return &AskResponse{Type: AnswerChat, Message: message}
}

// DataAnswer builds a data envelope. rows may be empty but never null:
// an executed query that matched nothing still yields "data": [].
func DataAnswer(message, sql string, rows []map[string]any, analysis *string, chart json.RawMessage) *AskResponse {
	if rows == nil {
		rows = []map[string]any{}
	}
	return &AskResponse{
		Type:     AnswerData,
		Message:  message,
		SQL:      &sql,
		Data:     rows,
		Analysis: analysis,
		Chart:    chart,
	}
}

// ErrorAnswer builds an error envelope.
func ErrorAnswer(message string) *AskResponse {
	return &AskResponse{Type: AnswerError, Message: message}
}

// EncodeRows coerces non-JSON-native warehouse scalars (dates, times,
// arbitrary-precision numerics, byte blobs) to their textual
// representation. This is the serialization boundary: the sanitizer
// leaves cell values untouched and the coercion happens here, just
// before the envelope is marshalled.
func EncodeRows(rows []map[string]any) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		m := make(map[string]any, len(row))
		for k, v := range row {
			m[k] = encodeValue(v)
		}
		out[i] = m
	}
	return out
}

func encodeValue(v any) any {
	switch t := v.(type) {
	case nil, string, bool, int, int64, float64:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case civil.Date:
		return t.String()
	case civil.Time:
		return t.String()
	case civil.DateTime:
		return t.String()
	case *big.Rat:
		return t.FloatString(9)
	case []byte:
		return string(t)
	case []any:
		enc := make([]any, len(t))
		for i, e := range t {
			enc[i] = encodeValue(e)
		}
		return enc
	case map[string]any:
		enc := make(map[string]any, len(t))
		for k, e := range t {
			enc[k] = encodeValue(e)
		}
		return enc
	default:
		return fmt.Sprintf("%v", t)
	}
}

// TrainResponse is returned by POST /api/train
type TrainResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}
