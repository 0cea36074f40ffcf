// Package chart asks the LLM collaborator for a Plotly-style figure
// spec describing a tabular result. A chart is a value-add: every
// failure path (model error, unparsable spec, empty figure) yields nil.
package chart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/aicockpit/aicockpit/internal/llm"
	"github.com/aicockpit/aicockpit/internal/service"
)

// maxSpecRows bounds how many rows are shown to the model.
const maxSpecRows = 50

type Builder struct {
	llm llm.Client
}

func NewBuilder(client llm.Client) *Builder {
	return &Builder{llm: client}
}

// Synthesize produces a validated chart JSON payload, or nil.
func (b *Builder) Synthesize(ctx context.Context, question, sql string, res *service.QueryResult) json.RawMessage {
	if b.llm == nil || res.Empty() {
		return nil
	}

	code, err := b.GenerateChartCode(ctx, question, sql, res)
	if err != nil {
		log.Warn().Err(err).Msg("chart generation failed (non-fatal)")
		return nil
	}

	fig, err := Render(code)
	if err != nil {
		log.Warn().Err(err).Msg("chart render failed (non-fatal)")
		return nil
	}
	return fig
}

// GenerateChartCode delegates figure construction to the model: it must
// reply with a single JSON object in Plotly figure form.
func (b *Builder) GenerateChartCode(ctx context.Context, question, sql string, res *service.QueryResult) (string, error) {
	var rowsJSON strings.Builder
	enc := json.NewEncoder(&rowsJSON)
	for i, row := range res.Rows {
		if i >= maxSpecRows {
			break
		}
		cells := make(map[string]string, len(row))
		for k, v := range row {
			cells[k] = fmt.Sprintf("%v", v)
		}
		if err := enc.Encode(cells); err != nil {
			return "", err
		}
	}

	prompt := fmt.Sprintf(`You are a data-visualization assistant. Build a Plotly figure for this query result.

Question: %q
SQL: %s
Columns: %s
Rows (one JSON object per line):
%s
Reply with ONLY one JSON object of the form {"data": [...], "layout": {...}}, a valid Plotly figure. Choose a sensible trace type (bar for categorical labels, line for time series, pie for share-of-total). Thai text in labels is fine. No explanation, no markdown.`,
		question, sql, strings.Join(res.Columns, ", "), rowsJSON.String())

	return b.llm.Complete(ctx, prompt)
}

// Render parses and validates generated figure code. A usable figure is
// a JSON object with a non-empty "data" trace array.
func Render(code string) (json.RawMessage, error) {
	body := stripFences(code)

	var fig struct {
		Data   []json.RawMessage `json:"data"`
		Layout json.RawMessage   `json:"layout"`
	}
	if err := json.Unmarshal([]byte(body), &fig); err != nil {
		return nil, fmt.Errorf("figure spec parse: %w", err)
	}
	if len(fig.Data) == 0 {
		return nil, fmt.Errorf("figure spec has no traces")
	}

	// Re-marshal so the payload is exactly the validated shape.
	out, err := json.Marshal(map[string]any{
		"data":   fig.Data,
		"layout": fig.Layout,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		}
		if end := strings.LastIndex(s, "```"); end != -1 {
			s = s[:end]
		}
	}
	// fall back to the outermost braces when the model adds prose
	if !strings.HasPrefix(strings.TrimSpace(s), "{") {
		start := strings.Index(s, "{")
		end := strings.LastIndex(s, "}")
		if start == -1 || end <= start {
			return s
		}
		s = s[start : end+1]
	}
	return strings.TrimSpace(s)
}
