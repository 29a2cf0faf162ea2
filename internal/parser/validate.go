package parser

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DropReason explains why a model entry did not become a Candidate.
type DropReason string

const (
	DropNotAnObject        DropReason = "not_an_object"
	DropMissingDescription DropReason = "missing_description"
	DropMissingAmount      DropReason = "missing_amount"
	DropInvalidAmount      DropReason = "invalid_amount"
	DropMissingCategory    DropReason = "missing_category"
	DropUnknownCategory    DropReason = "unknown_category"
	DropMissingDate        DropReason = "missing_date"
	DropInvalidDate        DropReason = "invalid_date"
)

// Assessment is the verdict for one model entry: exactly one of Candidate
// or Reason is set.
type Assessment struct {
	Index     int
	Candidate *Candidate
	Reason    DropReason
	Entry     any
}

func (a Assessment) Accepted() bool {
	return a.Candidate != nil
}

// Validator turns extracted JSON into candidates.
type Validator struct {
	// StrictCategories drops entries whose category is outside the closed set
	// and canonicalises the case of those inside it. When false any non-empty
	// category is passed through unchanged.
	StrictCategories bool
}

// Assess checks every entry of value. A non-array value is treated as a
// one-element list. Order is preserved.
func (v Validator) Assess(value any) []Assessment {
	entries, ok := value.([]any)
	if !ok {
		entries = []any{value}
	}

	assessments := make([]Assessment, len(entries))
	for i, entry := range entries {
		candidate, reason := v.assessEntry(entry)
		assessments[i] = Assessment{
			Index:     i,
			Candidate: candidate,
			Reason:    reason,
			Entry:     entry,
		}
	}
	return assessments
}

// Normalize returns only the accepted candidates of Assess, in order. An
// empty result means nothing was recognised and is not an error.
func (v Validator) Normalize(value any) []Candidate {
	var candidates []Candidate
	for _, a := range v.Assess(value) {
		if a.Accepted() {
			candidates = append(candidates, *a.Candidate)
		}
	}
	return candidates
}

func (v Validator) assessEntry(entry any) (*Candidate, DropReason) {
	fields, ok := entry.(map[string]any)
	if !ok {
		return nil, DropNotAnObject
	}

	description := stringField(fields, "description")
	if description == "" {
		return nil, DropMissingDescription
	}

	amount, reason := amountField(fields)
	if reason != "" {
		return nil, reason
	}

	rawCategory := stringField(fields, "category")
	if rawCategory == "" {
		return nil, DropMissingCategory
	}
	category := Category(rawCategory)
	if v.StrictCategories {
		canonical, known := CanonicalCategory(rawCategory)
		if !known {
			return nil, DropUnknownCategory
		}
		category = canonical
	}

	paymentType := stringField(fields, "paymentType")
	if paymentType == "" || paymentType == UnknownSentinel {
		paymentType = DefaultPaymentType
	}

	location := stringField(fields, "location")
	if location == "" {
		location = DefaultLocation
	}

	rawDate := stringField(fields, "date")
	if rawDate == "" {
		return nil, DropMissingDate
	}
	date, err := normalizeDate(rawDate)
	if err != nil {
		return nil, DropInvalidDate
	}

	return &Candidate{
		Description: description,
		Amount:      amount,
		Category:    category,
		PaymentType: paymentType,
		Location:    location,
		Date:        date,
	}, ""
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return strings.TrimSpace(s)
}

// amountField accepts a JSON number or a numeric string such as "$12.50".
// Zero is treated as missing.
func amountField(fields map[string]any) (decimal.Decimal, DropReason) {
	var (
		amount decimal.Decimal
		err    error
	)

	switch raw := fields["amount"].(type) {
	case nil:
		return decimal.Zero, DropMissingAmount
	case json.Number:
		amount, err = decimal.NewFromString(raw.String())
	case float64:
		amount = decimal.NewFromFloat(raw)
	case string:
		cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
		if cleaned == "" {
			return decimal.Zero, DropMissingAmount
		}
		amount, err = decimal.NewFromString(cleaned)
	default:
		err = fmt.Errorf("amount has type %T", raw)
	}

	if err != nil {
		return decimal.Zero, DropInvalidAmount
	}
	if amount.IsZero() {
		return decimal.Zero, DropMissingAmount
	}
	return amount, ""
}

// normalizeDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date part.
func normalizeDate(raw string) (string, error) {
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t.Format(DateLayout), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}
