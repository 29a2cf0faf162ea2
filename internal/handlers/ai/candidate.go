package ai

import "github.com/carson-networks/spend-tracker/internal/parser"

// Candidate is a parsed transaction that has not been saved yet.
type Candidate struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	PaymentType string  `json:"paymentType"`
	Location    string  `json:"location"`
	Date        string  `json:"date" doc:"YYYY-MM-DD"`
}

func fromCandidate(c parser.Candidate) Candidate {
	return Candidate{
		Description: c.Description,
		Amount:      c.Amount.InexactFloat64(),
		Category:    string(c.Category),
		PaymentType: c.PaymentType,
		Location:    c.Location,
		Date:        c.Date,
	}
}

func fromCandidates(candidates []parser.Candidate) []Candidate {
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = fromCandidate(c)
	}
	return out
}
