package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/streetbites/guide/client"
	"github.com/streetbites/guide/internal/guide"
)

const requestTimeout = 60 * time.Second

func newAskCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "ask QUERY...",
		Short: "Ask the guide once and print the answer and results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			orch := guide.NewOrchestrator(c)
			f := orch.SubmitQuery(ctx, strings.Join(args, " "))
			if f == nil {
				return fmt.Errorf("query is empty")
			}
			start := time.Now()
			if err := orch.Run(ctx, f); err != nil {
				return err
			}
			log.Debug().Dur("elapsed", time.Since(start)).Str("session_id", orch.SessionID()).Msg("query answered")

			s := orch.Snapshot()
			answer := s.Messages[len(s.Messages)-1].Content
			out := cmd.OutOrStdout()
			if output == outputText {
				fmt.Fprintln(out, answer)
				printCards(out, s.Results)
				return nil
			}
			cards := make([]guide.Card, 0, len(s.Results))
			for _, r := range s.Results {
				cards = append(cards, guide.CardOf(r))
			}
			return encode(out, output, askOutput{Answer: answer, Results: cards})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

func newReviewsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "reviews ID",
		Short: "List a restaurant's reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			detail, err := c.GetRestaurant(ctx, client.ID(args[0]))
			if err != nil {
				return err
			}
			if output == outputText {
				printReviews(cmd.OutOrStdout(), detail.Reviews)
				return nil
			}
			return encode(cmd.OutOrStdout(), output, reviewRows(detail.Reviews))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text, json or yaml")
	return cmd
}

func newReviewCmd() *cobra.Command {
	var name, comment string
	var rating int

	cmd := &cobra.Command{
		Use:   "review ID",
		Short: "Post a review for a restaurant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			id := client.ID(args[0])
			log.Debug().Str("restaurant_id", id.String()).Str("user_name", name).Int("rating", rating).Msg("creating review")
			resp, err := c.CreateReview(ctx, client.CreateReviewRequest{
				UserName:     name,
				Rating:       rating,
				Comment:      comment,
				RestaurantID: id,
			})
			if err != nil {
				return err
			}
			if !resp.OK() {
				return fmt.Errorf("review not accepted (status %q)", resp.Status)
			}

			detail, err := c.GetRestaurant(ctx, id)
			if err != nil {
				return err
			}
			printReviews(cmd.OutOrStdout(), detail.Reviews)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Your name")
	cmd.Flags().IntVar(&rating, "rating", guide.DefaultDraftRating, "Rating from 1 to 5")
	cmd.Flags().StringVar(&comment, "comment", "", "Optional comment")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the backend with demo restaurants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if err := c.Seed(ctx); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seeded")
			return nil
		},
	}
}
