package sqlgen_test

import (
	"testing"

	"github.com/aicockpit/aicockpit/internal/sqlgen"
)

func TestExtractSQL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "sql fence",
			text: "Here is the query:\n```sql\nSELECT name, SUM(total) AS total FROM orders GROUP BY name LIMIT 10\n```\nHope that helps!",
			want: "SELECT name, SUM(total) AS total FROM orders GROUP BY name LIMIT 10",
		},
		{
			name: "generic fence",
			text: "```\nSELECT id FROM users;\n```",
			want: "SELECT id FROM users",
		},
		{
			name: "fence with language tag",
			text: "```python\nSELECT id FROM users\n```",
			want: "SELECT id FROM users",
		},
		{
			name: "bare select with limit",
			text: "You can run this:\nSELECT product, COUNT(*) AS n\nFROM sales\nGROUP BY product\nLIMIT 50",
			want: "SELECT product, COUNT(*) AS n\nFROM sales\nGROUP BY product\nLIMIT 50",
		},
		{
			name: "cte",
			text: "WITH top AS (SELECT branch, SUM(total) t FROM sales GROUP BY branch) SELECT * FROM top ORDER BY t DESC LIMIT 5",
			want: "WITH top AS (SELECT branch, SUM(total) t FROM sales GROUP BY branch) SELECT * FROM top ORDER BY t DESC LIMIT 5",
		},
		{
			name: "bare single line",
			text: "Try this: SELECT region FROM branches;",
			want: "SELECT region FROM branches",
		},
		{
			name: "no statement",
			text: "I cannot answer that question from the available tables.",
			want: "",
		},
		{
			name: "empty input",
			text: "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sqlgen.ExtractSQL(tt.text); got != tt.want {
				t.Errorf("ExtractSQL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractSQL_PrefersSQLFence(t *testing.T) {
	text := "SELECT wrong FROM first\n```sql\nSELECT right FROM second\n```"
	if got := sqlgen.ExtractSQL(text); got != "SELECT right FROM second" {
		t.Errorf("ExtractSQL() = %q, want fenced statement", got)
	}
}
