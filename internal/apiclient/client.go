package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/spend-tracker/internal/llm"
	"github.com/carson-networks/spend-tracker/internal/parser"
)

const providerServer = "spend-tracker"

// Client talks to a running spend-tracker server. It can stand in for the
// in-process parser and transaction sink, so the CLI drives the same chat
// session code as the server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type candidateJSON struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	PaymentType string          `json:"paymentType"`
	Location    string          `json:"location"`
	Date        string          `json:"date"`
}

type parseResponse struct {
	Success       bool            `json:"success"`
	Transactions  []candidateJSON `json:"transactions"`
	OriginalInput string          `json:"originalInput"`
	Count         int             `json:"count"`
}

type parseErrorResponse struct {
	Error       string `json:"error"`
	Details     string `json:"details"`
	RawResponse string `json:"rawResponse"`
}

// Parse asks the server to parse text. Errors mirror the in-process
// pipeline: parser.ErrInputMissing, an llm.ErrModelUnavailable match, or
// *parser.UnparseableResponseError.
func (c *Client) Parse(ctx context.Context, text string) (*parser.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, parser.ErrInputMissing
	}

	resp, err := c.post(ctx, "/api/ai/parse-transactions", map[string]string{"input": text})
	if err != nil {
		// The model is only reachable through the server.
		return nil, &llm.UnavailableError{Provider: providerServer, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: read parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseFailure(resp.StatusCode, body)
	}

	var parsed parseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("apiclient: decode parse response: %w", err)
	}

	result := &parser.Result{Input: parsed.OriginalInput}
	for _, t := range parsed.Transactions {
		result.Candidates = append(result.Candidates, parser.Candidate{
			Description: t.Description,
			Amount:      t.Amount,
			Category:    parser.Category(t.Category),
			PaymentType: t.PaymentType,
			Location:    t.Location,
			Date:        t.Date,
		})
	}
	return result, nil
}

func parseFailure(status int, body []byte) error {
	var failure parseErrorResponse
	if err := json.Unmarshal(body, &failure); err != nil || failure.Error == "" {
		return fmt.Errorf("apiclient: parse failed: %d - %s", status, string(body))
	}

	switch {
	case status == http.StatusBadRequest:
		return parser.ErrInputMissing
	case failure.RawResponse != "" || failure.Error == "Failed to parse AI response as JSON":
		return &parser.UnparseableResponseError{Raw: failure.RawResponse, Err: errors.New(failure.Details)}
	case strings.Contains(failure.Details, llm.ErrModelUnavailable.Error()):
		return &llm.UnavailableError{Provider: providerServer, Err: errors.New(failure.Details)}
	default:
		return fmt.Errorf("apiclient: %s: %s", failure.Error, failure.Details)
	}
}

type createRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	PaymentType string  `json:"paymentType"`
	Location    string  `json:"location"`
	Date        string  `json:"date"`
}

type problem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Submit records a candidate through POST /v1/transaction.
func (c *Client) Submit(ctx context.Context, candidate parser.Candidate) error {
	date, err := candidate.Timestamp()
	if err != nil {
		return err
	}

	resp, err := c.post(ctx, "/v1/transaction", createRequest{
		Description: candidate.Description,
		Amount:      candidate.Amount.InexactFloat64(),
		Category:    string(candidate.Category),
		PaymentType: candidate.PaymentType,
		Location:    candidate.Location,
		Date:        date.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("apiclient: submit transaction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	var p problem
	if json.Unmarshal(body, &p) == nil && p.Detail != "" {
		return fmt.Errorf("%s (%d)", p.Detail, resp.StatusCode)
	}
	return fmt.Errorf("create transaction: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// post sends payload as JSON.
func (c *Client) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("apiclient: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("apiclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}
