package training

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const contextCacheTTL = 5 * time.Minute

// ContextSource yields the assembled prompt context for SQL generation.
type ContextSource interface {
	Context(ctx context.Context) (string, error)
}

// ContextBuilder assembles training examples into prompt context and
// caches the result. Concurrent cache misses share a single Postgres
// fetch via singleflight. Adding new training data invalidates the
// cache so the next request sees it.
type ContextBuilder struct {
	store *Store

	mu        sync.RWMutex
	cached    string
	expiresAt time.Time
	sf        singleflight.Group
}

func NewContextBuilder(store *Store) *ContextBuilder {
	return &ContextBuilder{store: store}
}

// Context returns the cached prompt context, rebuilding it when expired.
func (b *ContextBuilder) Context(ctx context.Context) (string, error) {
	b.mu.RLock()
	if b.cached != "" && time.Now().Before(b.expiresAt) {
		cached := b.cached
		b.mu.RUnlock()
		return cached, nil
	}
	b.mu.RUnlock()

	v, err, _ := b.sf.Do("context", func() (any, error) {
		// Double-check inside singleflight in case another goroutine
		// already rebuilt it while we waited to enter.
		b.mu.RLock()
		if b.cached != "" && time.Now().Before(b.expiresAt) {
			cached := b.cached
			b.mu.RUnlock()
			return cached, nil
		}
		b.mu.RUnlock()

		start := time.Now()
		examples, err := b.store.ListExamples(ctx)
		if err != nil {
			return "", err
		}
		assembled := assembleContext(examples)

		b.mu.Lock()
		b.cached = assembled
		b.expiresAt = time.Now().Add(contextCacheTTL)
		b.mu.Unlock()

		log.Debug().
			Int("examples", len(examples)).
			Dur("fetch_ms", time.Since(start)).
			Msg("training context rebuilt")
		return assembled, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached context after new training data lands.
func (b *ContextBuilder) Invalidate() {
	b.mu.Lock()
	b.cached = ""
	b.expiresAt = time.Time{}
	b.mu.Unlock()
}

func assembleContext(examples []Example) string {
	var ddl, docs, sql []string
	for _, ex := range examples {
		switch ex.Kind {
		case KindDDL:
			ddl = append(ddl, ex.Payload)
		case KindDocumentation:
			docs = append(docs, ex.Payload)
		case KindSQL:
			sql = append(sql, ex.Payload)
		}
	}

	var sb strings.Builder
	if len(ddl) > 0 {
		sb.WriteString("== SCHEMA (DDL) ==\n")
		sb.WriteString(strings.Join(ddl, "\n---\n"))
		sb.WriteString("\n\n")
	}
	if len(docs) > 0 {
		sb.WriteString("== DOCUMENTATION ==\n")
		sb.WriteString(strings.Join(docs, "\n---\n"))
		sb.WriteString("\n\n")
	}
	if len(sql) > 0 {
		sb.WriteString("== EXAMPLE QUERIES ==\n")
		sb.WriteString(strings.Join(sql, "\n---\n"))
		sb.WriteString("\n\n")
	}
	return sb.String()
}
