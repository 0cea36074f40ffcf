package security

import (
	"crypto/sha256"
	"fmt"

	"github.com/rs/zerolog/log"
)

// AuditLogger records pipeline events with hashed identifiers so audit
// trails never contain raw questions or SQL.
type AuditLogger struct {
	enabled bool
}

func NewAuditLogger(enabled bool) *AuditLogger {
	return &AuditLogger{enabled: enabled}
}

// LogQuestion records one orchestrated question: the generated SQL (if
// any), the outcome and row count.
func (a *AuditLogger) LogQuestion(question, generatedSQL string, success bool, rowCount int, executionTimeMs int64, errMsg string) {
	if !a.enabled {
		return
	}
	sqlHash := ""
	if generatedSQL != "" {
		sqlHash = hashStr(generatedSQL)[:16]
	}

	evt := log.Info().
		Str("event", "question_audit").
		Str("question_hash", hashStr(question)[:16]).
		Str("sql_hash", sqlHash).
		Bool("success", success).
		Int("row_count", rowCount).
		Int64("execution_time_ms", executionTimeMs)

	if errMsg != "" {
		evt = evt.Str("error", errMsg)
	}
	evt.Msg("audit")
}

// LogTraining records a training-data submission.
func (a *AuditLogger) LogTraining(kind string, payloadLen int) {
	if !a.enabled {
		return
	}
	log.Info().
		Str("event", "training_audit").
		Str("kind", kind).
		Int("payload_len", payloadLen).
		Msg("audit")
}

func hashStr(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h)
}
