package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/robby/boardmd/internal/auth"
	"github.com/robby/boardmd/internal/board"
	"github.com/robby/boardmd/internal/cards"
	"github.com/robby/boardmd/internal/gh"
	"github.com/robby/boardmd/internal/importer"
	"github.com/robby/boardmd/internal/projecturl"
	"github.com/robby/boardmd/internal/roadmap"
)

// Exit codes. Anything else that fails exits 1.
const (
	exitBadInput = 2
	exitAPI      = 3
)

var (
	// CLI flags
	tokenFlag      string
	outputFileFlag string
	orgFlag        string
	repoFlag       string
	limitFlag      int
	fieldLimitFlag int
)

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

// badInputError marks user-input failures so main can exit 2.
type badInputError struct {
	err error
}

func (e *badInputError) Error() string { return e.err.Error() }
func (e *badInputError) Unwrap() error { return e.err }

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "boardmd <project-uri>",
		Short: "Render a GitHub Projects v2 board as a Markdown checklist",
		Long: `boardmd fetches a GitHub Projects v2 board and renders its items as a
Markdown checklist grouped by the board's Status field.

With --org and --repo, the repository's open issues are first added to the
board with their Status set to Extracted.

Authentication:
  1. --github-token flag
  2. GITHUB_TOKEN environment variable (a .env file is honored)
  3. GitHub CLI: 'gh auth token'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBoard,
	}

	rootCmd.PersistentFlags().StringVar(&tokenFlag, "github-token", "", "GitHub token. Defaults to GITHUB_TOKEN.")
	rootCmd.PersistentFlags().StringVar(&outputFileFlag, "output-file", "", "Write Markdown to this file instead of stdout.")
	rootCmd.Flags().StringVar(&orgFlag, "org", "", "GitHub organization for the issue import path. Requires --repo.")
	rootCmd.Flags().StringVar(&repoFlag, "repo", "", "GitHub repository for the issue import path. Requires --org.")
	rootCmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum number of project items to fetch.")
	rootCmd.Flags().IntVar(&fieldLimitFlag, "field-limit", 8, "Maximum number of field values to fetch per item.")

	rootCmd.AddCommand(newFieldsCmd())
	rootCmd.AddCommand(newMilestonesCmd())
	rootCmd.AddCommand(newClassicCmd())
	rootCmd.AddCommand(newOpenCmd())

	return rootCmd
}

func runBoard(cmd *cobra.Command, args []string) error {
	if (orgFlag == "") != (repoFlag == "") {
		return &badInputError{errors.New("--org and --repo must be given together")}
	}

	ref, err := projecturl.Parse(args[0])
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if orgFlag != "" {
		if err := importer.New(client, logger).Run(ctx, ref, orgFlag, repoFlag); err != nil {
			return err
		}
	}

	nodeID, err := client.ResolveProjectNode(ctx, ref)
	if err != nil {
		return err
	}
	logger.Debug("resolved project", "node", nodeID)

	items, truncated, err := client.ProjectItems(ctx, nodeID, limitFlag, fieldLimitFlag)
	if err != nil {
		return err
	}
	if truncated {
		logger.Warn("board has more items than fetched; raise --limit to include them", "fetched", len(items))
	}

	markdown := board.Render(board.Categorize(items))

	return writeOutput(markdown)
}

func newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields <project-uri>",
		Short: "Print the project's field definitions as JSON",
		Long: `Prints the board's field list (IDs, names, types, and single-select
options) as JSON. Useful for finding the field and option IDs mutations need.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := projecturl.Parse(args[0])
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			nodeID, err := client.ResolveProjectNode(ctx, ref)
			if err != nil {
				return err
			}

			fields, err := client.ProjectFields(ctx, nodeID)
			if err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(fields, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}
}

func newMilestonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "milestones <owner/repo>",
		Short:         "Render a repository's milestones as a Markdown roadmap",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			org, repo, ok := strings.Cut(args[0], "/")
			if !ok || org == "" || repo == "" {
				return &badInputError{fmt.Errorf("expected owner/repo, got %q", args[0])}
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			markdown, err := roadmap.Build(context.Background(), client, org, repo)
			if err != nil {
				return err
			}

			return writeOutput(markdown + "\n")
		},
	}
}

func newClassicCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "classic <column-id>",
		Short:         "Render a classic project column's cards as a Markdown list",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			columnID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return &badInputError{fmt.Errorf("invalid column ID %q", args[0])}
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			columnCards, err := client.ColumnCards(ctx, columnID)
			if err != nil {
				return err
			}

			lines := cards.NewFormatter(client).FormatCards(ctx, columnCards)

			return writeOutput(strings.Join(lines, "\n") + "\n")
		},
	}
}

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "open <project-uri>",
		Short:         "Open the project board in the browser",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := projecturl.Parse(args[0]); err != nil {
				return err
			}
			return browser.OpenURL(args[0])
		},
	}
}

// newClient resolves the token and builds the GitHub client.
func newClient() (*gh.Client, error) {
	token := tokenFlag
	if token == "" {
		resolved, err := auth.GetToken()
		if err != nil {
			return nil, &badInputError{err}
		}
		token = resolved
	}
	return gh.New(token), nil
}

// writeOutput writes Markdown to --output-file, or stdout when unset.
func writeOutput(markdown string) error {
	if outputFileFlag == "" {
		_, err := os.Stdout.WriteString(markdown)
		return err
	}
	return os.WriteFile(outputFileFlag, []byte(markdown), 0o644)
}

// exitCode maps an error to the process exit status: 2 for bad input,
// 3 for network/API failures, 1 otherwise.
func exitCode(err error) int {
	var badInput *badInputError
	if errors.As(err, &badInput) || errors.Is(err, projecturl.ErrInvalidURI) {
		return exitBadInput
	}

	var transport *gh.TransportError
	var gqlErr *gh.GraphQLError
	var importErr *importer.ImportError
	if errors.As(err, &transport) || errors.As(err, &gqlErr) || errors.As(err, &importErr) ||
		errors.Is(err, gh.ErrProjectNotFound) ||
		errors.Is(err, importer.ErrNoStatusField) ||
		errors.Is(err, importer.ErrNoExtractedOption) {
		return exitAPI
	}

	return 1
}
