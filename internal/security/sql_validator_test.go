package security_test

import (
	"strings"
	"testing"

	"github.com/aicockpit/aicockpit/internal/security"
)

func TestSQLValidator_AllowsReadOnly(t *testing.T) {
	v := security.NewSQLValidator()
	queries := []string{
		"SELECT name, SUM(total) FROM orders GROUP BY name LIMIT 10",
		"select id from users limit 5",
		"WITH top AS (SELECT branch FROM sales) SELECT * FROM top LIMIT 5",
		"  SELECT 1  ",
		"SELECT a FROM t UNION ALL SELECT a FROM u",
	}
	for _, q := range queries {
		if msg := v.Validate(q); msg != "" {
			t.Errorf("Validate(%q) = %q, want accepted", q, msg)
		}
	}
}

func TestSQLValidator_RejectsNonSelect(t *testing.T) {
	v := security.NewSQLValidator()
	queries := []string{
		"DELETE FROM orders",
		"DROP TABLE orders",
		"INSERT INTO orders VALUES (1)",
		"UPDATE orders SET total = 0",
	}
	for _, q := range queries {
		msg := v.Validate(q)
		if msg == "" {
			t.Errorf("Validate(%q) accepted, want rejection", q)
			continue
		}
		if !strings.Contains(msg, "only SELECT") {
			t.Errorf("Validate(%q) = %q, want SELECT-only rejection", q, msg)
		}
	}
}

func TestSQLValidator_RejectsInjection(t *testing.T) {
	v := security.NewSQLValidator()
	queries := []string{
		"SELECT * FROM users; DROP TABLE users",
		"SELECT * FROM users WHERE name = 'x' OR 1=1",
		"SELECT * FROM users UNION SELECT password FROM admins",
		"SELECT * FROM users WHERE id = 1; -- comment",
		"SELECT /* hidden */ * FROM users",
		"SELECT * FROM users INTO OUTFILE '/tmp/x'",
		"SELECT SLEEP(10)",
	}
	for _, q := range queries {
		msg := v.Validate(q)
		if !strings.Contains(msg, "injection pattern") {
			t.Errorf("Validate(%q) = %q, want injection rejection", q, msg)
		}
	}
}

func TestSQLValidator_RejectsEmpty(t *testing.T) {
	v := security.NewSQLValidator()
	for _, q := range []string{"", "   ", "\n\t"} {
		if msg := v.Validate(q); msg == "" {
			t.Errorf("Validate(%q) accepted, want rejection", q)
		}
	}
}
