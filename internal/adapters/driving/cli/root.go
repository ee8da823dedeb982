// Package cli provides the cobra command tree for mineguard.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mineguard-cli/internal/core/domain"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driven"
	"github.com/custodia-labs/mineguard-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mineguard-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Options are the persistent flag values handed to the bootstrap.
type Options struct {
	// ConfigDir overrides ~/.mineguard.
	ConfigDir string

	// APIURL overrides api.base_url for this invocation.
	APIURL string

	// Token is used for this invocation instead of the saved one and is
	// never written to disk.
	Token string

	// Verbose enables debug logging.
	Verbose bool
}

// Services are the collaborators commands run against.
type Services struct {
	Documents   driving.DocumentService
	Comparisons driving.ComparisonService
	QA          driving.QAService
	Auth        driving.AuthService

	Payloads    driven.PayloadStore
	Decoder     driven.PageDecoder
	Suggestions driven.SuggestionStore

	// Metrics serves the gateway's Prometheus collectors. Optional.
	Metrics http.Handler

	// WatchCredentials reports token changes made by other processes. Optional.
	WatchCredentials func(ctx context.Context) (<-chan struct{}, error)
}

// BootstrapFunc builds services once flags have been parsed.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, error)

var (
	bootstrap BootstrapFunc
	services  *Services
	rootOpts  Options
)

// errNotConfigured is returned when a command runs without services.
var errNotConfigured = errors.New("services not configured")

var rootCmd = &cobra.Command{
	Use:   "mineguard",
	Short: "Document intelligence for compliance teams",
	Long: `MineGuard uploads documents for AI analysis, checks one document's
compliance against another, and answers questions grounded in a document.

Run 'mineguard login' first, then 'mineguard tui' for the interactive
workspace or use the subcommands directly.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(rootOpts.Verbose)
		if services != nil || bootstrap == nil {
			return nil
		}
		s, err := bootstrap(cmd.Context(), rootOpts)
		if err != nil {
			return err
		}
		services = s
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootOpts.ConfigDir, "config-dir", "", "Configuration directory (default ~/.mineguard)")
	flags.StringVar(&rootOpts.APIURL, "api-url", "", "API base URL (overrides api.base_url)")
	flags.StringVar(&rootOpts.Token, "token", "", "Access token for this invocation only (not saved)")
	flags.BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "Enable debug logging")
}

// SetBootstrap registers the function that builds services.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer func() { releasePayloads(services) }()
	return rootCmd.ExecuteContext(ctx)
}

// releasePayloads closes the payload store if it supports it, removing
// payload files left by work still in flight when a command returned.
func releasePayloads(s *Services) {
	if s == nil {
		return
	}
	c, ok := s.Payloads.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		logger.Warn("release payloads: %v", err)
	}
}

// explain turns failures the user can act on into guidance.
func explain(err error) error {
	switch domain.Classify(err) {
	case domain.FailureAuth:
		return fmt.Errorf("%w: run 'mineguard login'", err)
	case domain.FailureNotFound:
		return fmt.Errorf("document %w", err)
	}
	return err
}
