package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/spend-tracker/internal/chat"
	"github.com/carson-networks/spend-tracker/internal/entry"
	"github.com/carson-networks/spend-tracker/internal/parser"
)

func newRecordCmd(opts *rootOptions) *cobra.Command {
	var noDelay bool

	cmd := &cobra.Command{
		Use:   "record <text>",
		Short: "Parse the text and save every transaction found",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := opts.logger()
			if err != nil {
				return err
			}
			client := opts.client()
			recorder := entry.NewBulkRecorder(client, logger)
			if noDelay {
				recorder.Pacing = func(int) time.Duration { return 0 }
			}
			return runRecord(cmd.Context(), client, recorder, strings.Join(args, " "), cmd.OutOrStdout(), logger)
		},
	}

	cmd.Flags().BoolVar(&noDelay, "no-delay", false, "save without pausing between transactions")
	return cmd
}

type textParser interface {
	Parse(ctx context.Context, text string) (*parser.Result, error)
}

func runRecord(ctx context.Context, p textParser, recorder *entry.BulkRecorder, text string, out io.Writer, logger *logrus.Logger) error {
	result, err := p.Parse(ctx, text)
	if err != nil {
		return err
	}
	if len(result.Candidates) == 0 {
		say(out, chat.NoneFoundMessage)
		return nil
	}

	for i, c := range result.Candidates {
		fmt.Fprintln(out, subtleStyle.Render(fmt.Sprintf("%d. %s", i+1, c.Summary())))
	}

	bar := progressbar.NewOptions(len(result.Candidates),
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("Saving transactions"),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(out) }),
	)

	var failures []string
	recorder.Progress = func(item entry.ItemResult) {
		if item.Err != nil {
			failures = append(failures, item.Message())
		}
		if err := bar.Add(1); err != nil {
			logger.WithError(err).Debug("Spendctl.Record.progress bar")
		}
	}

	report, err := recorder.Record(ctx, result.Candidates)
	for _, failure := range failures {
		fmt.Fprintln(out, errorStyle.Render(failure))
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, successStyle.Render(report.Summary()))
	return nil
}
