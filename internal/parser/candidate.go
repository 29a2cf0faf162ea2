package parser

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultPaymentType = "Card"
	DefaultLocation    = "Unknown"

	// UnknownSentinel is what the model emits when it could not tell.
	UnknownSentinel = "Unknown"

	DateLayout = "2006-01-02"
)

// Candidate is one structured transaction proposed from free text. It is
// not persisted until a user confirms it.
type Candidate struct {
	Description string
	Amount      decimal.Decimal
	Category    Category
	PaymentType string
	Location    string
	Date        string
}

// Timestamp is the candidate date at midnight UTC, the form the
// create-transaction operation expects.
func (c Candidate) Timestamp() (time.Time, error) {
	t, err := time.Parse(DateLayout, c.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("candidate date %q: %w", c.Date, err)
	}
	return t.UTC(), nil
}

// Summary renders "$<amount> for <description> (<category>)".
func (c Candidate) Summary() string {
	return fmt.Sprintf("$%s for %s (%s)", c.Amount.String(), c.Description, c.Category)
}
