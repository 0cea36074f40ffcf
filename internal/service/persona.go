package service

import "strings"

// Persona is the honorific-consistent voice used for conversational
// replies. It mirrors the politeness register of the question and lives
// only for the duration of one response.
type Persona struct {
	Name             string
	EndParticle      string
	QuestionParticle string
	Pronoun          string
}

// ResolvePersona derives a persona from the trailing Thai politeness
// particle of the trimmed question. Particles are case-sensitive Thai
// script, so the question is not lowercased here.
func ResolvePersona(question string) Persona {
	q := strings.TrimSpace(question)
	switch {
	case strings.HasSuffix(q, "ค่ะ") || strings.HasSuffix(q, "คะ"):
		return Persona{Name: "พิม", EndParticle: "ค่ะ", QuestionParticle: "คะ", Pronoun: "ดิฉัน"}
	case strings.HasSuffix(q, "ครับ"):
		return Persona{Name: "โจ", EndParticle: "ครับ", QuestionParticle: "ครับ", Pronoun: "ผม"}
	default:
		return Persona{Name: "AI Assistant", EndParticle: "ครับ", QuestionParticle: "ครับ", Pronoun: "ผม"}
	}
}
