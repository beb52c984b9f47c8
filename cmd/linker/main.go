package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/samvad-hq/oracle-linker/internal/app"
	"github.com/samvad-hq/oracle-linker/internal/config"
	"github.com/samvad-hq/oracle-linker/internal/logger"
	"github.com/samvad-hq/oracle-linker/pkg/oracle"
	"github.com/spf13/cobra"
)

var (
	fromFlag   string
	toFlag     string
	apiKeyFlag string
)

var rootCmd = &cobra.Command{
	Use:   "linker",
	Short: "Find how two actors are linked through shared movies",
	Long: `Queries the Oracle of Bacon XML interface for the path between two actors.

The outcome is written as a structured log entry and summarised on stdout.
The API key defaults to ORACLE_API_KEY from the environment or configs/.env.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runLookup,
}

func init() {
	rootCmd.Flags().StringVar(&fromFlag, "from", "Kevin Bacon", "actor to start from")
	rootCmd.Flags().StringVar(&toFlag, "to", "", "actor to reach")
	rootCmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "oracle API key (overrides ORACLE_API_KEY)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "linker failed: %v\n", err)
		os.Exit(1)
	}
}

func runLookup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.DebugObj("linker starting", "config", cfg.Redacted())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	linker, err := app.NewLinker(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize linker", "error", err.Error())
		return err
	}
	defer linker.Close()

	resp, err := linker.Lookup(ctx, fromFlag, toFlag, apiKeyFlag)
	if err != nil {
		return lookupError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), summarize(resp))
	return nil
}

// lookupError keeps the API key off stderr.
func lookupError(err error) error {
	return fmt.Errorf("lookup: %s", oracle.RedactAPIKey(err.Error()))
}

func summarize(resp oracle.Response) string {
	switch r := resp.(type) {
	case oracle.Graph:
		if len(r.Path) == 0 {
			return "graph: (empty)"
		}
		return "graph: " + strings.Join(r.Path, " -> ")
	case oracle.Spellcheck:
		return "did you mean: " + strings.Join(r.Candidates, ", ")
	case oracle.DomainError:
		return fmt.Sprintf("error (%s): %s", r.Subtype, strings.TrimSpace(r.Message))
	case oracle.Unclassified:
		return r.Message
	default:
		return "no response"
	}
}
