// Package insight derives a short narrative summary of a tabular
// result. Two strategies exist: a local computation over the sanitized
// value/label roles (default, no added latency) and a delegated LLM
// summary. An insight is a value-add: every failure path yields nil,
// never an error.
package insight

import (
	"context"
	"fmt"
	"html"
	"math/big"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/aicockpit/aicockpit/internal/llm"
	"github.com/aicockpit/aicockpit/internal/service"
)

const (
	ModeLocal = "local"
	ModeLLM   = "llm"
)

// maxPromptRows bounds the delegated prompt size.
const maxPromptRows = 20

type Synthesizer struct {
	mode string
	llm  llm.Client
}

func NewSynthesizer(mode string, client llm.Client) *Synthesizer {
	if mode != ModeLLM {
		mode = ModeLocal
	}
	return &Synthesizer{mode: mode, llm: client}
}

// Synthesize returns a summary of the sanitized result, or nil when no
// summary can be produced.
func (s *Synthesizer) Synthesize(ctx context.Context, question, sql string, res *service.QueryResult) *string {
	if res.Empty() {
		return nil
	}
	if s.mode == ModeLLM && s.llm != nil {
		return s.delegated(ctx, question, sql, res)
	}
	return localInsight(res)
}

type summary struct {
	TopLabel string
	TopValue float64
	Total    float64
	SharePct float64
}

// summarize requires the sanitized roles value and label. SharePct is 0
// when the values sum to 0, guarding the division.
func summarize(res *service.QueryResult) (summary, bool) {
	hasValue, hasLabel := false, false
	for _, c := range res.Columns {
		switch c {
		case "value":
			hasValue = true
		case "label":
			hasLabel = true
		}
	}
	if !hasValue || !hasLabel {
		return summary{}, false
	}

	var sum summary
	first := true
	for _, row := range res.Rows {
		v, ok := toFloat(row["value"])
		if !ok {
			continue
		}
		sum.Total += v
		if first || v > sum.TopValue {
			sum.TopValue = v
			sum.TopLabel = fmt.Sprintf("%v", row["label"])
			first = false
		}
	}
	if first {
		return summary{}, false
	}
	if sum.Total != 0 {
		sum.SharePct = sum.TopValue / sum.Total * 100
	}
	return sum, true
}

func localInsight(res *service.QueryResult) *string {
	sum, ok := summarize(res)
	if !ok {
		return nil
	}
	// The label originates from warehouse data and is rendered in the
	// frontend, so it is escaped for HTML embedding here.
	text := fmt.Sprintf("อันดับสูงสุดคือ \"%s\" ด้วยค่า %s คิดเป็น %.1f%% ของยอดรวมทั้งหมด %s",
		html.EscapeString(sum.TopLabel),
		formatNumber(sum.TopValue),
		sum.SharePct,
		formatNumber(sum.Total))
	return &text
}

func (s *Synthesizer) delegated(ctx context.Context, question, sql string, res *service.QueryResult) *string {
	prompt := fmt.Sprintf(
		"คุณเป็นนักวิเคราะห์ข้อมูลธุรกิจ ผู้ใช้ถามว่า: %q\nSQL ที่ใช้: %s\nผลลัพธ์ข้อมูล:\n%s\n\n"+
			"กรุณาวิเคราะห์ข้อมูลนี้เป็นภาษาไทย สรุปสั้น ๆ 2-3 ประโยค "+
			"เน้น insight ที่เป็นประโยชน์ต่อการตัดสินใจทางธุรกิจ เช่น แนวโน้ม จุดเด่น หรือข้อสังเกตสำคัญ",
		question, sql, renderRows(res))

	reply, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("insight generation failed (non-fatal)")
		return nil
	}
	text := strings.TrimSpace(reply)
	if text == "" {
		return nil
	}
	return &text
}

func renderRows(res *service.QueryResult) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(res.Columns, " | "))
	sb.WriteString("\n")
	for i, row := range res.Rows {
		if i >= maxPromptRows {
			break
		}
		cells := make([]string, len(res.Columns))
		for j, c := range res.Columns {
			cells[j] = fmt.Sprintf("%v", row[c])
		}
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case *big.Rat:
		f, _ := t.Float64()
		return f, true
	case *big.Float:
		f, _ := t.Float64()
		return f, true
	default:
		return 0, false
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
