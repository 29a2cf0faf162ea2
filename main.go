package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/spend-tracker/api"
	"github.com/carson-networks/spend-tracker/internal/chat"
	"github.com/carson-networks/spend-tracker/internal/config"
	"github.com/carson-networks/spend-tracker/internal/llm"
	"github.com/carson-networks/spend-tracker/internal/logging"
	"github.com/carson-networks/spend-tracker/internal/operator"
	"github.com/carson-networks/spend-tracker/internal/parser"
	"github.com/carson-networks/spend-tracker/internal/service"
	"github.com/carson-networks/spend-tracker/internal/storage"
)

const databaseConnectTimeout = 30 * time.Second

func main() {
	logger := logging.SetupLogging()
	logger.Info("spend-tracker starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if err := logging.ApplyLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Warn("logging.ApplyLevel")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbStorage, err := storage.NewStorage(ctx, envConfig, logger, databaseConnectTimeout)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	model, err := llm.New(ctx, envConfig.LLM)
	if err != nil {
		logger.WithError(err).Fatal("llm.New")
		return
	}
	logger.WithFields(logrus.Fields{
		"provider": envConfig.LLM.Provider,
		"model":    envConfig.LLM.Model,
	}).Info("language model configured")

	pipeline := parser.NewPipeline(model, parser.Validator{StrictCategories: envConfig.StrictCategories}, logger)

	httpRest := api.Rest{
		Logger:       logger,
		Port:         envConfig.HTTPPort,
		CORSOrigin:   envConfig.CORSOrigin,
		ModelTimeout: envConfig.LLM.Timeout,
		Storage:      dbStorage,
		Service:      service.NewService(dbStorage, delegator),
		Parser:       pipeline,
		Chats:        chat.NewStore(pipeline, logger, envConfig.ChatSessionIdle),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return httpRest.Serve(groupCtx)
	})

	if err := group.Wait(); err != nil {
		logger.WithError(err).Error("spend-tracker stopped with error")
	}
}
