package parser

import (
	"fmt"
	"strings"
	"time"
)

const promptTemplate = `You are a financial transaction parser. Parse the following text into JSON format.

Text to parse: %s
Today's date: %s

CRITICAL: Return ONLY valid JSON array format. No other text or explanation.

Example format:
[
  {
    "description": "lunch",
    "amount": 25,
    "category": "%s",
    "paymentType": "%s",
    "location": "%s",
    "date": "%s"
  }
]

Rules:
- Extract ALL transactions mentioned
- Use only these categories: %s
- Never invent a category outside that list
- Default paymentType: %s
- Default location: %s
- Convert relative dates (yesterday, today, last friday, etc.) to YYYY-MM-DD format using today's date
- Return JSON array ONLY, no other text`

// BuildPrompt renders the instruction text for one parse request. The
// result depends only on its arguments.
func BuildPrompt(text string, referenceDate time.Time) string {
	today := referenceDate.Format(DateLayout)
	return fmt.Sprintf(promptTemplate,
		text,
		today,
		CategoryFood,
		DefaultPaymentType,
		DefaultLocation,
		today,
		strings.Join(categoryNames(), ", "),
		DefaultPaymentType,
		DefaultLocation,
	)
}
