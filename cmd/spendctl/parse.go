package main

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

type parsedCandidate struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	PaymentType string  `json:"paymentType"`
	Location    string  `json:"location"`
	Date        string  `json:"date"`
}

func newParseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Print the transactions found in the text as JSON, without saving",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.Context(), opts.client(), strings.Join(args, " "), cmd.OutOrStdout())
		},
	}
}

func runParse(ctx context.Context, p textParser, text string, out io.Writer) error {
	result, err := p.Parse(ctx, text)
	if err != nil {
		return err
	}

	candidates := make([]parsedCandidate, len(result.Candidates))
	for i, c := range result.Candidates {
		candidates[i] = parsedCandidate{
			Description: c.Description,
			Amount:      c.Amount.InexactFloat64(),
			Category:    string(c.Category),
			PaymentType: c.PaymentType,
			Location:    c.Location,
			Date:        c.Date,
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(candidates)
}
