package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pmvhaven/internal/document"
	"pmvhaven/internal/identification"
	"pmvhaven/internal/logging"
	"pmvhaven/internal/services"
	"pmvhaven/internal/stash"
)

const (
	methodSceneByURL      = "sceneByURL"
	methodSceneByFragment = "sceneByFragment"
)

type resolveFunc func(*identification.Resolver, context.Context, stash.Fragment) (*identification.Outcome, error)

func resolverFor(method string) resolveFunc {
	if method == methodSceneByURL {
		return (*identification.Resolver).ByURL
	}
	return (*identification.Resolver).ByFragment
}

func newScrapeCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newScrapeCommand(ctx, methodSceneByURL, "Resolve the scene named by the fragment url"),
		newScrapeCommand(ctx, methodSceneByFragment, "Resolve the scene matching the fragment filename or title"),
	}
}

func newScrapeCommand(ctx *commandContext, method, short string) *cobra.Command {
	return &cobra.Command{
		Use:   method,
		Short: short,
		Long:  short + ". The fragment is read as one JSON object from stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			frag, err := readFragment(cmd.InOrStdin())
			if err != nil {
				return err
			}
			outcome, err := ctx.scrape(cmd.Context(), method, frag)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), outcome.Result())
		},
	}
}

// scrape runs one resolution. The outcome is non-nil whenever resolution
// started, even on failure.
func (c *commandContext) scrape(ctx context.Context, method string, frag stash.Fragment) (*identification.Outcome, error) {
	resolver, err := c.resolver()
	if err != nil {
		return nil, err
	}
	ctx = services.WithMethod(ctx, method)
	logger := logging.WithContext(ctx, c.loggerValue())
	logger.Info("scrape started", logging.String("config_path", c.configPath))

	start := time.Now()
	outcome, err := resolverFor(method)(resolver, ctx, frag)
	if err != nil {
		return outcome, err
	}
	logger.Info("scrape finished",
		logging.String("decision", string(outcome.Decision)),
		logging.Duration("elapsed", time.Since(start)))
	return outcome, nil
}

// readFragment decodes the stdin fragment. Blank input and malformed JSON are
// input errors.
func readFragment(r io.Reader) (stash.Fragment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return stash.Fragment{}, services.Wrap(services.ErrInvalidInput, "", "", "read stdin", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return stash.Fragment{}, services.Wrap(services.ErrInvalidInput, "", "", "no JSON input provided on stdin", nil)
	}
	raw, err := document.Parse(data)
	if err != nil {
		return stash.Fragment{}, services.Wrap(services.ErrInvalidInput, "", "", fmt.Sprintf("invalid JSON input: %v", err), nil)
	}
	return stash.NewFragment(raw), nil
}
