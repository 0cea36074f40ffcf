package sqlgen

import (
	"regexp"
	"strings"
)

// ExtractSQL pulls a statement from model output using 4 strategies in
// order:
// 1. ```sql ... ``` code block (preferred)
// 2. ``` ... ``` generic code block containing SELECT/WITH
// 3. SELECT/WITH statement spanning multiple lines (until LIMIT or end)
// 4. Single-line SELECT statement as last resort
var (
	// CTE: WITH name AS ( ... ) SELECT ...
	reCTE = regexp.MustCompile(`(?is)(WITH\s+\w+\s+AS\s*\(.+?(?:LIMIT\s+\d+|;\s*$|\z))`)
	// Plain SELECT spanning multiple lines ending with LIMIT or semicolon
	reSelectBlock = regexp.MustCompile(`(?is)(SELECT\s+.+?FROM\s+.+?(?:LIMIT\s+\d+|;\s*$|\z))`)
	reSelectLine  = regexp.MustCompile(`(?i)(SELECT\s+\S.+?\bFROM\b\s+\S+)`)
	reFromWord    = regexp.MustCompile(`(?i)\bFROM\b`)
)

func ExtractSQL(text string) string {
	if sql := fromSQLFence(text); sql != "" {
		return sql
	}
	if sql := fromAnyFence(text); sql != "" {
		return sql
	}
	if m := reCTE.FindString(text); m != "" {
		return strings.TrimSuffix(strings.TrimSpace(m), ";")
	}
	if m := reSelectBlock.FindString(text); m != "" {
		candidate := strings.TrimSuffix(strings.TrimSpace(m), ";")
		if reFromWord.MatchString(candidate) {
			return candidate
		}
	}
	if m := reSelectLine.FindString(text); m != "" {
		return strings.TrimSuffix(strings.TrimSpace(m), ";")
	}
	return ""
}

func fromSQLFence(text string) string {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, "```sql")
	if idx == -1 {
		return ""
	}
	body := text[idx+len("```sql"):]
	if len(body) > 0 && body[0] == '\n' {
		body = body[1:]
	}
	end := strings.Index(body, "```")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(body[:end])
}

func fromAnyFence(text string) string {
	parts := strings.Split(text, "```")
	for i := 1; i < len(parts); i += 2 {
		candidate := strings.TrimSpace(parts[i])
		// strip a language tag line if present (e.g. "python\nSELECT")
		if nl := strings.Index(candidate, "\n"); nl != -1 {
			firstLine := strings.ToUpper(strings.TrimSpace(candidate[:nl]))
			if !strings.Contains(firstLine, "SELECT") && !strings.Contains(firstLine, "WITH") {
				candidate = strings.TrimSpace(candidate[nl:])
			}
		}
		up := strings.ToUpper(candidate)
		if strings.HasPrefix(up, "SELECT") || strings.HasPrefix(up, "WITH") {
			return strings.TrimSuffix(strings.TrimSpace(candidate), ";")
		}
	}
	return ""
}
