package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/spend-tracker/internal/service"
)

// CategoryStatisticsInput bounds the statistics by transaction date.
type CategoryStatisticsInput struct {
	StartDate string `query:"startDate" doc:"RFC3339 or YYYY-MM-DD lower bound, inclusive"`
	EndDate   string `query:"endDate" doc:"RFC3339 or YYYY-MM-DD upper bound, the whole day is included"`
}

// CategoryStatistic is the total spent in one category.
type CategoryStatistic struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"`
}

type CategoryStatisticsOutput struct {
	Body struct {
		Categories []CategoryStatistic `json:"categories"`
	}
}

type categoryStatistician interface {
	CategoryStatistics(ctx context.Context, startDate, endDate *time.Time) ([]service.CategoryTotal, error)
}

// CategoryStatisticsHandler handles GET /v1/statistics/categories.
type CategoryStatisticsHandler struct {
	TransactionService categoryStatistician
}

func NewCategoryStatisticsHandler(svc categoryStatistician) *CategoryStatisticsHandler {
	return &CategoryStatisticsHandler{TransactionService: svc}
}

func (h *CategoryStatisticsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "category-statistics",
		Method:      http.MethodGet,
		Path:        "/v1/statistics/categories",
		Summary:     "Category statistics",
		Description: "Sums spending per category, optionally within a date range.",
		Tags:        []string{"Statistics"},
	}, h.handle)
}

func parseDateParam(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, huma.NewError(http.StatusBadRequest, "invalid "+name)
}

func (h *CategoryStatisticsHandler) handle(ctx context.Context, input *CategoryStatisticsInput) (*CategoryStatisticsOutput, error) {
	start, err := parseDateParam("startDate", input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateParam("endDate", input.EndDate)
	if err != nil {
		return nil, err
	}

	totals, err := h.TransactionService.CategoryStatistics(ctx, start, end)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to compute statistics", err)
	}

	out := &CategoryStatisticsOutput{}
	out.Body.Categories = make([]CategoryStatistic, len(totals))
	for i, total := range totals {
		out.Body.Categories[i] = CategoryStatistic{
			Category:    total.Category,
			TotalAmount: total.TotalAmount.InexactFloat64(),
		}
	}
	return out, nil
}
