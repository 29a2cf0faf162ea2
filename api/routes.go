package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/carson-networks/spend-tracker/internal/chat"
	"github.com/carson-networks/spend-tracker/internal/handlers/ai"
	"github.com/carson-networks/spend-tracker/internal/handlers/v1/budget"
	"github.com/carson-networks/spend-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/spend-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/spend-tracker/internal/logging"
	"github.com/carson-networks/spend-tracker/internal/parser"
	"github.com/carson-networks/spend-tracker/internal/service"
	"github.com/carson-networks/spend-tracker/internal/storage"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger     *logrus.Logger
	Port       string
	CORSOrigin string

	// ModelTimeout bounds a single language model call. Write timeouts are
	// sized so a slow model still gets its answer back to the client.
	ModelTimeout time.Duration

	Storage *storage.Storage
	Service *service.Service
	Parser  *parser.Pipeline
	Chats   *chat.Store
}

// Handler builds the full route tree.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	config := huma.DefaultConfig("Spend Tracker API", "1.0.0")
	// Bodies keep the exact shapes the browser client reads, without $schema links.
	config.CreateHooks = nil
	api := humago.New(mux, config)
	api.UseMiddleware(logging.Middleware(r.Logger))

	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewGetTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewUpdateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(api)
	transaction.NewCategoryStatisticsHandler(r.Service.Transaction).Register(api)
	budget.NewHandler(r.Service.Budget).Register(api)

	ai.NewParseTransactionsHandler(r.Parser).Register(api)
	ai.NewChatHandler(r.Chats, r.Service.Transaction).Register(api)

	return otelhttp.NewHandler(withCORS(r.CORSOrigin, mux), "spend-tracker")
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	writeTimeout := 30 * time.Second
	if r.ModelTimeout+10*time.Second > writeTimeout {
		writeTimeout = r.ModelTimeout + 10*time.Second
	}

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	r.Logger.Info("HttpServer.Serve.shutting down")
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
