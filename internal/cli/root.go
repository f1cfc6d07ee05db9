// Package cli implements the photogrip command line. The bare command runs
// the terminal gallery; the subcommands script the same services.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"photogrip/internal/config"
	"photogrip/internal/version"
)

type rootOptions struct {
	configPath string
	apiURL     string
	logLevel   string
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "photogrip",
		Short: "Browse and share the wedding photos from your terminal.",
		Long: `Browse and share the wedding photos from your terminal.

Run without a command to open the gallery. The commands below script the
same server for uploads, deletes and exports.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()
			return runTUI(cmd.Context(), app)
		},
	}

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/photogrip/config.toml)")
	flags.StringVar(&opts.apiURL, "api-url", "", "photo server URL, overrides api_url")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newPhotosCmd(opts),
		newPeopleCmd(opts),
		newShareCmd(opts),
		newUploadCmd(opts),
		newDeleteCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newGuestsCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line with args
func Execute(ctx context.Context, args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// loadConfig reads the config file and environment, then applies the flags
func loadConfig(opts *rootOptions) (*config.Config, config.ConfigService, error) {
	svc := config.NewConfigService(opts.configPath, nil)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, err
	}

	if opts.apiURL != "" {
		derived := cfg.WSURL == config.DeriveWSURL(cfg.APIURL)
		cfg.APIURL = strings.TrimRight(strings.TrimSpace(opts.apiURL), "/")
		if derived {
			cfg.WSURL = config.DeriveWSURL(cfg.APIURL)
		}
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	return cfg, svc, nil
}
