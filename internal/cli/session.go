package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/rummage/internal/config"
	"github.com/vvka-141/rummage/internal/files/filesystem"
	"github.com/vvka-141/rummage/internal/logging"
)

// session bundles what a utility needs for one invocation.
type session struct {
	cfg    *config.Config
	logger *logging.ConsoleLogger
	store  filesystem.Store
}

// newSession resolves the configuration from the working directory and
// builds the logger and OS store for the utility prog.
func newSession(cmd *cobra.Command, prog string) (*session, error) {
	cfg, err := config.Resolve(".")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", prog, err)
		return nil, reported{err}
	}

	logger := logging.NewConsoleLogger(cmd.ErrOrStderr(), prog, cfg.Verbose)
	logger.Verbose("limits: line_buffer=%d path_max=%d name_max=%d",
		cfg.Limits.LineBuffer, cfg.Limits.PathMax, cfg.Limits.NameMax)

	return &session{
		cfg:    cfg,
		logger: logger,
		store:  filesystem.NewOSStoreWithNameMax(cfg.Limits.NameMax),
	}, nil
}

// reportUsage prints a usage error and marks it reported.
func reportUsage(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err)
	return reported{err}
}
