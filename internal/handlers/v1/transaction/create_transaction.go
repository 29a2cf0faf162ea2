package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/spend-tracker/internal/logging"
	"github.com/carson-networks/spend-tracker/internal/parser"
	"github.com/carson-networks/spend-tracker/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Description string  `json:"description" minLength:"1" doc:"What the money was spent on"`
	Amount      float64 `json:"amount" doc:"Amount spent"`
	Category    string  `json:"category" minLength:"1" doc:"Spending category"`
	PaymentType string  `json:"paymentType,omitempty" doc:"Payment method, defaults to Card"`
	Location    string  `json:"location,omitempty" doc:"Location, defaults to Unknown"`
	Date        string  `json:"date" format:"date-time" doc:"RFC3339 transaction date"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

type transactionCreator interface {
	CreateTransaction(ctx context.Context, create service.TransactionCreate) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Records a transaction and returns the stored record.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseCreateTransactionInput converts the body and fills in the payment
// type and location defaults.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.TransactionCreate, error) {
	date, err := time.Parse(time.RFC3339, input.Body.Date)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}

	paymentType := input.Body.PaymentType
	if paymentType == "" {
		paymentType = parser.DefaultPaymentType
	}
	location := input.Body.Location
	if location == "" {
		location = parser.DefaultLocation
	}

	return service.TransactionCreate{
		Description: input.Body.Description,
		Amount:      decimal.NewFromFloat(input.Body.Amount),
		Category:    input.Body.Category,
		PaymentType: paymentType,
		Location:    location,
		Date:        date,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	create, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.CreateTransaction(ctx, create)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create transaction", err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionID", tx.ID.String())
	}

	return &CreateTransactionOutput{Status: http.StatusCreated, Body: fromService(*tx)}, nil
}
