package ai

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spend-tracker/internal/logging"
	"github.com/carson-networks/spend-tracker/internal/parser"
)

// ParseError is the error body of the parse endpoint. Browser clients read
// the error, details and rawResponse keys directly, so it does not use the
// problem-details model. RawResponse is present, possibly empty, only when
// the model output could not be read as JSON.
type ParseError struct {
	status      int
	Message     string  `json:"error"`
	Details     string  `json:"details,omitempty"`
	RawResponse *string `json:"rawResponse,omitempty"`
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) GetStatus() int {
	return e.status
}

type ParseTransactionsBody struct {
	Input string `json:"input,omitempty" doc:"Free text describing one or more purchases"`
}

type ParseTransactionsInput struct {
	Body *ParseTransactionsBody `required:"false"`
}

type ParseTransactionsResponseBody struct {
	Success       bool        `json:"success"`
	Transactions  []Candidate `json:"transactions"`
	OriginalInput string      `json:"originalInput"`
	Count         int         `json:"count"`
}

type ParseTransactionsOutput struct {
	Body ParseTransactionsResponseBody
}

type transactionParser interface {
	Parse(ctx context.Context, input string) (*parser.Result, error)
}

// ParseTransactionsHandler handles POST /api/ai/parse-transactions.
type ParseTransactionsHandler struct {
	Parser transactionParser
}

func NewParseTransactionsHandler(p transactionParser) *ParseTransactionsHandler {
	return &ParseTransactionsHandler{Parser: p}
}

func (h *ParseTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "parse-transactions",
		Method:      http.MethodPost,
		Path:        "/api/ai/parse-transactions",
		Summary:     "Parse transactions",
		Description: "Turns free text into transaction candidates using the language model. Nothing is saved.",
		Tags:        []string{"AI"},
	}, h.handle)
}

func (h *ParseTransactionsHandler) handle(ctx context.Context, input *ParseTransactionsInput) (*ParseTransactionsOutput, error) {
	var text string
	if input.Body != nil {
		text = input.Body.Input
	}

	result, err := h.Parser.Parse(ctx, text)
	if err != nil {
		return nil, parseFailure(err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("inputLength", len(text))
	}

	return &ParseTransactionsOutput{Body: ParseTransactionsResponseBody{
		Success:       true,
		Transactions:  fromCandidates(result.Candidates),
		OriginalInput: result.Input,
		Count:         len(result.Candidates),
	}}, nil
}

func parseFailure(err error) *ParseError {
	var unparseable *parser.UnparseableResponseError
	switch {
	case errors.Is(err, parser.ErrInputMissing):
		return &ParseError{status: http.StatusBadRequest, Message: "Input text is required"}
	case errors.As(err, &unparseable):
		return &ParseError{
			status:      http.StatusInternalServerError,
			Message:     "Failed to parse AI response as JSON",
			Details:     unparseable.Err.Error(),
			RawResponse: &unparseable.Raw,
		}
	default:
		return &ParseError{
			status:  http.StatusInternalServerError,
			Message: "Failed to parse transactions",
			Details: err.Error(),
		}
	}
}
