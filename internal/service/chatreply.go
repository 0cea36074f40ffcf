package service

import (
	"fmt"
	"regexp"
	"strings"
)

// replyCategory pairs a matcher with a template. Categories are tried
// in order and the first match wins.
type replyCategory struct {
	name    string
	pattern *regexp.Regexp
	render  func(p Persona) string
}

var replyCategories = []replyCategory{
	{
		name:    "greeting",
		pattern: regexp.MustCompile(`(สวัสดี|hello|hi|hey|หวัดดี|ดีจ้า|ดีค่ะ|ดีครับ|^ดี)`),
		render: func(p Persona) string {
			return fmt.Sprintf("สวัสดี%s %sชื่อ%s เป็นผู้ช่วยวิเคราะห์ข้อมูลธุรกิจ%s มีเรื่องข้อมูลอะไรให้ช่วยไหม%s?",
				p.EndParticle, p.Pronoun, p.Name, p.EndParticle, p.QuestionParticle)
		},
	},
	{
		name:    "well_being",
		pattern: regexp.MustCompile(`(สบายดี|เป็นไง)`),
		render: func(p Persona) string {
			return fmt.Sprintf("สบายดี%s ขอบคุณที่ถามนะ%s มีอะไรให้ช่วยวิเคราะห์ข้อมูลไหม%s?",
				p.EndParticle, p.QuestionParticle, p.QuestionParticle)
		},
	},
	{
		name:    "thanks",
		pattern: regexp.MustCompile(`(ขอบคุณ|ขอบใจ|thank)`),
		render: func(p Persona) string {
			return fmt.Sprintf("ยินดี%s หากมีอะไรให้ช่วยเพิ่มเติม บอกได้เลยนะ%s",
				p.EndParticle, p.QuestionParticle)
		},
	},
	{
		name:    "identity",
		pattern: regexp.MustCompile(`(who are you|คุณคือใคร|คุณเป็นใคร|ชื่ออะไร|เป็นใคร)`),
		render: func(p Persona) string {
			return fmt.Sprintf("%sชื่อ%s%s เป็น AI ผู้ช่วยวิเคราะห์ข้อมูลธุรกิจ%s สามารถถามเกี่ยวกับยอดขาย ลูกค้า สินค้า และข้อมูลอื่น ๆ ได้เลย%s",
				p.Pronoun, p.Name, p.EndParticle, p.EndParticle, p.QuestionParticle)
		},
	},
	{
		name:    "help",
		pattern: regexp.MustCompile(`(help|ช่วย|ทำอะไรได้)`),
		render: func(p Persona) string {
			return fmt.Sprintf("%sสามารถช่วยวิเคราะห์ข้อมูลธุรกิจได้%s เช่น ถามเรื่องยอดขาย ลูกค้า สินค้าขายดี หรือสรุปข้อมูลต่าง ๆ ลองถามได้เลยนะ%s",
				p.Pronoun, p.EndParticle, p.QuestionParticle)
		},
	},
	{
		name:    "farewell",
		pattern: regexp.MustCompile(`(bye|ลาก่อน|ไปก่อน|ไปล่ะ)`),
		render: func(p Persona) string {
			return fmt.Sprintf("ลาก่อนนะ%s แล้วพบกันใหม่%s", p.QuestionParticle, p.EndParticle)
		},
	},
}

// RespondChat produces a persona-flavored reply for a non-data
// question. The lookup is closed and static: every input maps to
// exactly one template, with the identity template as fallback.
func RespondChat(question string, p Persona) string {
	q := strings.ToLower(strings.TrimSpace(question))
	for _, c := range replyCategories {
		if c.pattern.MatchString(q) {
			return c.render(p)
		}
	}
	return fmt.Sprintf("%sชื่อ%s%s เป็นผู้ช่วยวิเคราะห์ข้อมูลธุรกิจ%s ลองถามเกี่ยวกับข้อมูลธุรกิจได้เลยนะ%s",
		p.Pronoun, p.Name, p.EndParticle, p.EndParticle, p.QuestionParticle)
}
