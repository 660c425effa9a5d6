package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/streetbites/guide/client"
	"github.com/streetbites/guide/internal/guide"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

type askOutput struct {
	Answer  string       `json:"answer" yaml:"answer"`
	Results []guide.Card `json:"results" yaml:"results"`
}

type reviewRow struct {
	ID       string `json:"id" yaml:"id"`
	UserName string `json:"user_name" yaml:"user_name"`
	Rating   int    `json:"rating" yaml:"rating"`
	Comment  string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

func reviewRows(reviews []client.Review) []reviewRow {
	rows := make([]reviewRow, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, reviewRow{ID: r.ID.String(), UserName: r.UserName, Rating: r.Rating, Comment: r.Comment})
	}
	return rows
}

func checkFormat(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unsupported output %q (want text, json or yaml)", format)
}

// encode writes v as json or yaml; text output is handled by the caller.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return checkFormat(format)
}

func printCards(w io.Writer, results []client.Restaurant) {
	for i, r := range results {
		c := guide.CardOf(r)
		fmt.Fprintf(w, "%d. %s  ★ %s\n", i+1, c.Name, c.Rating)
		if c.Location != "" {
			fmt.Fprintf(w, "   %s\n", c.Location)
		}
		fmt.Fprintf(w, "   %s\n", strings.Join(c.Badges, " · "))
	}
}

func printReviews(w io.Writer, reviews []client.Review) {
	if len(reviews) == 0 {
		fmt.Fprintln(w, "No reviews yet. Be the first!")
		return
	}
	for _, r := range reviews {
		fmt.Fprintf(w, "- %s %s\n", r.UserName, strings.Repeat("★", max(0, r.Rating)))
		if r.Comment != "" {
			fmt.Fprintf(w, "  %s\n", r.Comment)
		}
	}
}
