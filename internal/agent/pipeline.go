// Package agent contains the request orchestrator: the only component
// with side effects. It composes the pure classifiers and transforms
// with the SQL-generation, warehouse and enrichment collaborators, and
// guarantees that every request terminates in exactly one of the three
// response envelopes.
package agent

import (
	"context"
	"encoding/json"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aicockpit/aicockpit/internal/models"
	"github.com/aicockpit/aicockpit/internal/security"
	"github.com/aicockpit/aicockpit/internal/service"
)

const (
	successMessage = "วิเคราะห์ข้อมูลเรียบร้อยครับ"
	errorPrefix    = "ขออภัย เกิดข้อผิดพลาดในการประมวลผลคำถาม: "
)

// SQLGenerator is the NL→SQL capability.
type SQLGenerator interface {
	GenerateSQL(ctx context.Context, question string) (string, error)
}

// Warehouse executes one statement against the data warehouse.
type Warehouse interface {
	Execute(ctx context.Context, sql string) (*service.QueryResult, *service.QueryStats, error)
}

// ChartSynthesizer produces an optional chart payload for a sanitized
// result. Implementations never return an error; failure is nil.
type ChartSynthesizer interface {
	Synthesize(ctx context.Context, question, sql string, res *service.QueryResult) json.RawMessage
}

// InsightSynthesizer produces an optional narrative summary for a
// sanitized result. Implementations never return an error; failure is
// nil.
type InsightSynthesizer interface {
	Synthesize(ctx context.Context, question, sql string, res *service.QueryResult) *string
}

// Pipeline orchestrates one question end to end. The three collaborator
// capabilities are held as independent handles so each is mockable on
// its own.
type Pipeline struct {
	gen           SQLGenerator
	warehouse     Warehouse
	chart         ChartSynthesizer
	insight       InsightSynthesizer
	audit         *security.AuditLogger
	enrichTimeout time.Duration
}

func NewPipeline(
	gen SQLGenerator,
	warehouse Warehouse,
	chart ChartSynthesizer,
	insight InsightSynthesizer,
	audit *security.AuditLogger,
	enrichTimeout time.Duration,
) *Pipeline {
	return &Pipeline{
		gen:           gen,
		warehouse:     warehouse,
		chart:         chart,
		insight:       insight,
		audit:         audit,
		enrichTimeout: enrichTimeout,
	}
}

// Answer runs the full pipeline for one question and always returns a
// well-formed envelope: chat for conversational intent, data for a
// query attempt (however degraded), error for generation failures and
// anything unanticipated.
func (p *Pipeline) Answer(ctx context.Context, question string) (resp *models.AskResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().
				Interface("panic", rec).
				Str("stack", string(debug.Stack())).
				Msg("pipeline panic recovered")
			resp = models.ErrorAnswer(errorPrefix + "internal error")
		}
	}()

	question = strings.TrimSpace(question)
	intent := service.ClassifyIntent(question)
	log.Debug().Str("intent", string(intent)).Str("question", question).Msg("classified")

	if intent == service.IntentChat {
		persona := service.ResolvePersona(question)
		return models.ChatAnswer(service.RespondChat(question, persona))
	}
	return p.answerData(ctx, question)
}

func (p *Pipeline) answerData(ctx context.Context, question string) *models.AskResponse {
	start := time.Now()

	// SQL generation is the one collaborator failure that aborts the
	// request. No retry: user-facing latency wins over completeness.
	sql, err := p.gen.GenerateSQL(ctx, question)
	if err != nil {
		log.Warn().Err(err).Msg("sql generation failed")
		p.audit.LogQuestion(question, "", false, 0, time.Since(start).Milliseconds(), err.Error())
		return models.ErrorAnswer(errorPrefix + err.Error())
	}
	log.Debug().Str("sql", sql).Msg("sql generated")

	// An execution failure is recovered as zero rows. The attempted SQL
	// still goes back to the caller so it can be diagnosed.
	result, stats, err := p.warehouse.Execute(ctx, sql)
	if err != nil {
		log.Warn().Err(err).Msg("sql execution failed, reporting empty result")
		result = nil
	}

	var execMs int64
	var rowCount int
	if stats != nil {
		execMs = stats.ExecutionMs
	}
	if result != nil {
		rowCount = len(result.Rows)
	}
	p.audit.LogQuestion(question, sql, err == nil, rowCount, execMs, "")

	sanitized := service.Sanitize(result)
	if sanitized == nil {
		// Empty result: no enrichment, respond immediately.
		return models.DataAnswer(successMessage, sql, nil, nil, nil)
	}

	enr := p.enrich(ctx, question, sql, sanitized)
	rows := models.EncodeRows(sanitized.Rows)
	return models.DataAnswer(successMessage, sql, rows, enr.analysis, enr.chart)
}

type enrichment struct {
	chart    json.RawMessage
	analysis *string
}

// enrich runs chart and insight synthesis concurrently, each under its
// own deadline. A task that misses its deadline is abandoned: the
// buffered channel lets its goroutine finish without leaking, and its
// late result is never merged into the response. The two tasks share no
// state and cannot fail each other.
func (p *Pipeline) enrich(ctx context.Context, question, sql string, res *service.QueryResult) enrichment {
	chartCtx, cancelChart := context.WithTimeout(ctx, p.enrichTimeout)
	defer cancelChart()
	insightCtx, cancelInsight := context.WithTimeout(ctx, p.enrichTimeout)
	defer cancelInsight()

	chartCh := make(chan json.RawMessage, 1)
	insightCh := make(chan *string, 1)

	go func() { chartCh <- p.chart.Synthesize(chartCtx, question, sql, res) }()
	go func() { insightCh <- p.insight.Synthesize(insightCtx, question, sql, res) }()

	// The selects run in sequence, so by the time the second one runs its
	// context may have expired even though the task delivered its result
	// long ago. Both channel and Done can then be ready at once and select
	// picks arbitrarily, so on Done a final non-blocking receive drains a
	// result that was buffered before the deadline.
	var out enrichment
	select {
	case out.chart = <-chartCh:
	case <-chartCtx.Done():
		select {
		case out.chart = <-chartCh:
		default:
			log.Warn().Dur("timeout", p.enrichTimeout).Msg("chart synthesis timed out (non-fatal)")
		}
	}
	select {
	case out.analysis = <-insightCh:
	case <-insightCtx.Done():
		select {
		case out.analysis = <-insightCh:
		default:
			log.Warn().Dur("timeout", p.enrichTimeout).Msg("insight synthesis timed out (non-fatal)")
		}
	}
	return out
}
