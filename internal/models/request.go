package models

import (
	"strings"
	"unicode/utf8"
)

const maxQuestionRunes = 2000

// AskRequest for POST /api/chat
type AskRequest struct {
	Question string `json:"question"`
}

// Validate returns a transport-level rejection message, or "" if the
// request is acceptable.
func (r *AskRequest) Validate() string {
	q := strings.TrimSpace(r.Question)
	if q == "" {
		return "question is required"
	}
	if utf8.RuneCountInString(q) > maxQuestionRunes {
		return "question is too long"
	}
	return ""
}

// TrainRequest for POST /api/train. Any subset of the three fragment
// kinds may be present.
type TrainRequest struct {
	DDL           *string `json:"ddl,omitempty"`
	Documentation *string `json:"documentation,omitempty"`
	SQL           *string `json:"sql,omitempty"`
}

func (r *TrainRequest) Empty() bool {
	return r.DDL == nil && r.Documentation == nil && r.SQL == nil
}
