package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/spend-tracker/internal/chat"
	"github.com/carson-networks/spend-tracker/internal/parser"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant and confirm each transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := opts.logger()
			if err != nil {
				return err
			}
			client := opts.client()
			session := chat.NewSession(client, logger)
			return runChat(cmd.Context(), session, client, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
		},
	}
}

type chatSession interface {
	Handle(ctx context.Context, text string) (chat.Reply, error)
	Confirm(ctx context.Context, sink chat.Submitter) (chat.Reply, error)
	Discard() chat.Reply
}

// runChat reads one message per line until EOF or "quit". A candidate on the
// form is only saved after an explicit yes.
func runChat(ctx context.Context, session chatSession, sink chat.Submitter, in io.Reader, out io.Writer, logger *logrus.Logger) error {
	scanner := bufio.NewScanner(in)
	say(out, chat.GreetingMessage)

	for {
		fmt.Fprint(out, promptStyle.Render("you> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(text) {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		reply, err := session.Handle(ctx, text)
		if err != nil {
			logger.WithError(err).Debug("Spendctl.Chat.handle failed")
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			continue
		}
		say(out, reply.Message)

		if reply.Form == nil || reply.State == chat.StateAwaitingSelection {
			continue
		}

		fmt.Fprintln(out, formStyle.Render(formText(*reply.Form)))
		fmt.Fprint(out, promptStyle.Render("Save this transaction? [y/N] "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		if answer := strings.ToLower(strings.TrimSpace(scanner.Text())); answer != "y" && answer != "yes" {
			say(out, session.Discard().Message)
			continue
		}

		saved, err := session.Confirm(ctx, sink)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("Failed to save transaction: %v", err)))
			session.Discard()
			continue
		}
		fmt.Fprintln(out, successStyle.Render(saved.Message))
	}
}

func say(out io.Writer, message string) {
	if message == "" {
		return
	}
	fmt.Fprintln(out, assistantStyle.Render(message))
}

func formText(c parser.Candidate) string {
	return strings.Join([]string{
		"Description:  " + c.Description,
		"Amount:       $" + c.Amount.StringFixed(2),
		"Category:     " + string(c.Category),
		"Payment type: " + c.PaymentType,
		"Location:     " + c.Location,
		"Date:         " + c.Date,
	}, "\n")
}
