package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Intent is the coarse category assigned to a question before any
// collaborator is invoked.
type Intent string

const (
	IntentChat Intent = "chat"
	IntentData Intent = "data"
)

// shortChatRuneLimit: utterances below this length without a data
// keyword are assumed conversational.
const shortChatRuneLimit = 15

// dataKeywords are matched as substrings against the normalized
// question. A hit classifies the question as a data query no matter
// what else it contains, so "สวัสดี ยอดขาย?" still queries data.
var dataKeywords = []string{
	"ยอดขาย", "ยอด", "ขาย", "ลูกค้า", "สินค้า", "รายได้", "กำไร", "ต้นทุน",
	"revenue", "sales", "customer", "product", "profit", "cost", "price",
	"table", "query", "report", "select", "from", "where",
	"สูงสุด", "ต่ำสุด", "เฉลี่ย", "รวม", "จำนวน", "เท่าไหร่", "กี่",
	"max", "min", "average", "total", "count", "sum",
	"order", "ออเดอร์", "invoice", "payment", "stock", "inventory",
	"แสดง", "ดึงข้อมูล", "หา", "ค้นหา", "รายการ", "สรุป",
}

var greetingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(สวัสดี|หวัดดี|ดีจ้า|ดีค่ะ|ดีครับ)`),
	regexp.MustCompile(`^(hello|hi|hey|yo)[\s!?.]*$`),
	regexp.MustCompile(`good\s*(morning|afternoon|evening|night)`),
	regexp.MustCompile(`(สบายดี|เป็นไง|ทำอะไรอยู่)`),
	regexp.MustCompile(`(ขอบคุณ|ขอบใจ|thank|thanks)`),
	regexp.MustCompile(`(bye|ลาก่อน|ไปก่อน|ไปล่ะ)`),
	regexp.MustCompile(`(who are you|คุณคือใคร|คุณเป็นใคร|ชื่ออะไร|เป็นใคร)`),
	regexp.MustCompile(`(help|ช่วยอะไรได้|ทำอะไรได้บ้าง)`),
	regexp.MustCompile(`^(ดี|hey|ok|โอเค|เฮ้|หวัดดี)[\s!?.]*$`),
}

// intentRule pairs a named predicate with its outcome. Rules are
// evaluated in order; the first match wins, so the data-keyword rule
// always overrides the greeting rules.
type intentRule struct {
	name   string
	match  func(q string) bool
	intent Intent
}

var intentRules = []intentRule{
	{
		name: "data_keyword",
		match: func(q string) bool {
			for _, kw := range dataKeywords {
				if strings.Contains(q, kw) {
					return true
				}
			}
			return false
		},
		intent: IntentData,
	},
	{
		name: "greeting_pattern",
		match: func(q string) bool {
			for _, p := range greetingPatterns {
				if p.MatchString(q) {
					return true
				}
			}
			return false
		},
		intent: IntentChat,
	},
	{
		name: "short_utterance",
		match: func(q string) bool {
			return utf8.RuneCountInString(q) < shortChatRuneLimit
		},
		intent: IntentChat,
	},
}

// ClassifyIntent maps a raw question to chat or data. It is a
// deterministic total function: no I/O, no errors. Longer keyword-free
// text defaults to data on the assumption that it is a business
// question the keyword list failed to catch.
func ClassifyIntent(question string) Intent {
	q := strings.ToLower(strings.TrimSpace(question))
	for _, rule := range intentRules {
		if rule.match(q) {
			return rule.intent
		}
	}
	return IntentData
}
