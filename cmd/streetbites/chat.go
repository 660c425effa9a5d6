package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/streetbites/guide/client"
	"github.com/streetbites/guide/internal/guide"
	"github.com/streetbites/guide/internal/logger"
	"github.com/streetbites/guide/internal/tui"
)

func newChatCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive session (terminal UI on a TTY, line mode otherwise)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			ctx := cmd.Context()
			if cfg.SeedOnStart {
				if err := c.SeedInBackground(ctx); err != nil {
					log.Warn().Err(err).Msg("seed not scheduled")
				}
			}

			orch := guide.NewOrchestrator(c, guide.WithQueryErrorHandler(func(query string, err error) {
				log.Warn().Err(err).Str("query", query).Int("status", client.StatusCode(err)).Msg("query failed")
			}))

			if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
				return runLineMode(ctx, orch, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return runTUI(ctx, orch)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Use line mode even on a terminal")
	return cmd
}

// runTUI owns the screen, so logs are redirected to the log file until it
// exits.
func runTUI(ctx context.Context, orch *guide.Orchestrator) error {
	f, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	prev := log.Logger
	log.Logger = logger.NewWithWriter("streetbites", f)
	defer func() { log.Logger = prev }()

	log.Info().Str("session_id", orch.SessionID()).Str("backend_url", cfg.BackendURL).Msg("terminal UI started")
	return tui.Run(ctx, orch, tui.Options{MarkdownStyle: "dark"})
}

const lineHelp = `Type a question, or:
  /open N       show result N and its reviews
  /name TEXT    set your name for a review
  /rating N     set the rating (1-5)
  /comment TEXT set the comment
  /submit       post the review for the open restaurant
  /close        close the open restaurant
  /quit         leave`

// runLineMode drives the session from plain lines of input.
func runLineMode(ctx context.Context, orch *guide.Orchestrator, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, orch.Messages()[0].Content)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "/") {
			if err := orch.Run(ctx, orch.SubmitQuery(ctx, line)); err != nil {
				fmt.Fprintf(out, "! %v\n", err)
				continue
			}
			if line == "" {
				continue
			}
			msgs := orch.Messages()
			fmt.Fprintln(out, msgs[len(msgs)-1].Content)
			printCards(out, orch.Results())
			continue
		}

		verb, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		switch verb {
		case "/quit", "/exit":
			return nil
		case "/help":
			fmt.Fprintln(out, lineHelp)
		case "/open":
			results := orch.Results()
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 || n > len(results) {
				fmt.Fprintf(out, "! pick a result between 1 and %d\n", len(results))
				continue
			}
			if err := orch.Run(ctx, orch.Open(ctx, results[n-1])); err != nil {
				return err
			}
			printDetail(out, orch.Detail())
		case "/close":
			orch.Close()
		case "/name":
			_ = orch.UpdateDraftField(guide.FieldUserName, arg)
		case "/comment":
			_ = orch.UpdateDraftField(guide.FieldComment, arg)
		case "/rating":
			if err := orch.UpdateDraftField(guide.FieldRating, arg); err != nil {
				fmt.Fprintf(out, "! %v\n", err)
			}
		case "/submit":
			f := orch.SubmitDraft(ctx)
			if f == nil {
				fmt.Fprintln(out, "! open a restaurant first")
				continue
			}
			if err := orch.Run(ctx, f); err != nil {
				return err
			}
			printReviews(out, orch.Detail().Reviews)
		default:
			fmt.Fprintln(out, lineHelp)
		}
	}
	return sc.Err()
}

func printDetail(out io.Writer, d guide.DetailState) {
	if d.Restaurant == nil {
		return
	}
	c := guide.CardOf(*d.Restaurant)
	fmt.Fprintf(out, "%s  ★ %s\n", c.Name, c.Rating)
	if c.Location != "" {
		fmt.Fprintln(out, c.Location)
	}
	printReviews(out, d.Reviews)
}
