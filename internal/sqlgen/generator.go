// Package sqlgen turns a natural-language question into a SQL statement
// using the LLM collaborator plus accumulated training context.
package sqlgen

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aicockpit/aicockpit/internal/llm"
	"github.com/aicockpit/aicockpit/internal/training"
)

const generationRules = `You are an expert BigQuery SQL analyst for a Thai business-data assistant.

RULES:
1. Generate exactly one SELECT query - never INSERT, UPDATE, DELETE, DROP, or DDL
2. Always add a LIMIT clause (max 1000 rows) unless the question demands otherwise
3. Never use SELECT *; list the columns explicitly
4. Wrap the final SQL in a code block exactly like this:
` + "```sql" + `
SELECT ...
` + "```" + `
5. Output nothing after the code block`

// Generator produces SQL from questions. It holds the two capabilities
// separately: the completion client and the training-context source.
type Generator struct {
	llm      llm.Client
	trainCtx training.ContextSource
}

func NewGenerator(client llm.Client, trainCtx training.ContextSource) *Generator {
	return &Generator{llm: client, trainCtx: trainCtx}
}

// GenerateSQL asks the model for a statement answering the question.
// A missing training context degrades to a bare prompt; a model failure
// or a reply with no extractable SQL is a generation failure.
func (g *Generator) GenerateSQL(ctx context.Context, question string) (string, error) {
	trainingContext := ""
	if g.trainCtx != nil {
		var err error
		trainingContext, err = g.trainCtx.Context(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("training context unavailable, generating without it")
			trainingContext = ""
		}
	}

	prompt := buildPrompt(question, trainingContext)
	reply, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("sql generation: %w", err)
	}

	sql := ExtractSQL(reply)
	if sql == "" {
		return "", fmt.Errorf("sql generation: no SELECT statement in model reply")
	}
	return sql, nil
}

func buildPrompt(question, trainingContext string) string {
	prompt := generationRules + "\n\nToday's date (CURRENT_DATE) is " + time.Now().Format("2006-01-02") + ".\n\n"
	if trainingContext != "" {
		prompt += trainingContext
	}
	prompt += fmt.Sprintf("User question: %q\n\nSQL:", question)
	return prompt
}
