package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pmvhaven/internal/document"
	"pmvhaven/internal/identification"
	"pmvhaven/internal/stash"
)

func newExplainCommand(ctx *commandContext) *cobra.Command {
	var urlFlag string

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Show how a fragment resolves, with every scored candidate",
		Long: "Run the sceneByFragment pipeline on the JSON fragment read from stdin, or the\n" +
			"sceneByURL pipeline when --url is given, and print the ranked candidates and\n" +
			"the final decision as a table.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			method := methodSceneByFragment
			var frag stash.Fragment
			if link := strings.TrimSpace(urlFlag); link != "" {
				method = methodSceneByURL
				frag = stash.NewFragment(document.Object(document.Field{Key: "url", Value: document.String(link)}))
			} else {
				var err error
				if frag, err = readFragment(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			outcome, err := ctx.scrape(cmd.Context(), method, frag)
			if outcome != nil {
				fmt.Fprint(cmd.OutOrStdout(), renderOutcome(outcome))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&urlFlag, "url", "", "Resolve this scene URL instead of a stdin fragment")
	return cmd
}

func renderOutcome(o *identification.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Method:    %s\n", o.Method)
	fmt.Fprintf(&b, "Query:     %s\n", orDash(o.Query))
	fmt.Fprintf(&b, "Tokens:    %s\n", orDash(strings.Join(o.Tokens, ", ")))
	fmt.Fprintf(&b, "Durations: %s\n", orDash(formatDurations(o.Durations)))
	fmt.Fprintf(&b, "Searches:  %d\n", o.Attempts)

	if len(o.Ranked) > 0 {
		headers := []string{"Rank", "Score", "Similarity", "Duration", "Match", "ID", "Title"}
		aligns := []columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft, alignLeft}
		rows := make([][]string, 0, len(o.Ranked))
		for i, sc := range o.Ranked {
			duration := "-"
			if sc.HasDuration {
				duration = formatSeconds(sc.Duration)
			}
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				strconv.FormatFloat(sc.Score, 'f', 2, 64),
				strconv.FormatFloat(sc.Similarity, 'f', 3, 64),
				duration,
				yesNo(sc.DurationMatch),
				orDash(sc.ID),
				orDash(sc.Title),
			})
		}
		b.WriteString(renderTable(headers, rows, aligns))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Decision:  %s\n", orDash(string(o.Decision)))
	switch {
	case o.Scene != nil:
		fmt.Fprintf(&b, "Scene:     %s <%s>\n", o.Scene.Title, o.Scene.URL)
	case o.Selection != nil:
		for i, opt := range o.Selection.Results {
			fmt.Fprintf(&b, "Option %d:  %s <%s>\n", i+1, opt.Title, opt.URL)
		}
	}
	return b.String()
}

func formatDurations(values []float64) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, formatSeconds(v))
	}
	return strings.Join(parts, ", ")
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "s"
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
