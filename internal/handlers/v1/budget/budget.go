package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/spend-tracker/internal/service"
)

// Budget is the API response model for the spending budget.
type Budget struct {
	ID        string  `json:"id" doc:"Budget UUID"`
	Amount    float64 `json:"amount" doc:"Budget amount"`
	UpdatedAt string  `json:"updatedAt" doc:"RFC3339 time of the last change"`
}

type BudgetOutput struct {
	Body Budget
}

// SetBudgetInput is the Huma input for PUT /v1/budget.
type SetBudgetInput struct {
	Body struct {
		Amount float64 `json:"amount" minimum:"0" doc:"New budget amount"`
	}
}

type budgetService interface {
	GetBudget(ctx context.Context) (*service.Budget, error)
	SetBudget(ctx context.Context, amount decimal.Decimal) (*service.Budget, error)
}

// Handler serves GET and PUT /v1/budget.
type Handler struct {
	BudgetService budgetService
}

func NewHandler(svc budgetService) *Handler {
	return &Handler{BudgetService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget",
		Summary:     "Get budget",
		Description: "Returns the spending budget, creating a zero budget on first use.",
		Tags:        []string{"Budget"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "set-budget",
		Method:      http.MethodPut,
		Path:        "/v1/budget",
		Summary:     "Set budget",
		Tags:        []string{"Budget"},
	}, h.set)
}

func (h *Handler) get(ctx context.Context, _ *struct{}) (*BudgetOutput, error) {
	budget, err := h.BudgetService.GetBudget(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get budget", err)
	}
	return &BudgetOutput{Body: fromService(budget)}, nil
}

func (h *Handler) set(ctx context.Context, input *SetBudgetInput) (*BudgetOutput, error) {
	budget, err := h.BudgetService.SetBudget(ctx, decimal.NewFromFloat(input.Body.Amount))
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to set budget", err)
	}
	return &BudgetOutput{Body: fromService(budget)}, nil
}

func fromService(b *service.Budget) Budget {
	return Budget{
		ID:        b.ID.String(),
		Amount:    b.Amount.InexactFloat64(),
		UpdatedAt: b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
