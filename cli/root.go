// Package cli implements the vetctl commands.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kochabx/vetclinic/config"
)

type rootFlags struct {
	configFile    string
	baseURL       string
	sessionDriver string
	sessionPath   string
	logLevel      string
	raw           bool
}

var (
	flags rootFlags
	app   *App
)

// NewRootCmd builds the vetctl command tree. Configuration is resolved once
// per invocation; flags override the file and the environment.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "vetctl",
		Short:         "Veterinary clinic API client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				logError(cmd, err)
				return err
			}
			app, err = NewApp(cmd.Context(), s)
			if err != nil {
				logError(cmd, err)
				return err
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default searches ./vetclinic.yaml and ~/.vetclinic)")
	pf.StringVarP(&flags.baseURL, "base-url", "u", "", "API base URL")
	pf.StringVar(&flags.sessionDriver, "session-driver", "", "session store: memory, file, bolt, sql or redis")
	pf.StringVar(&flags.sessionPath, "session-path", "", "session file for the file and bolt drivers")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level")
	pf.BoolVar(&flags.raw, "raw", false, "print compact output for scripts")

	rootCmd.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newTokenCmd(),
		newWhoamiCmd(),
		newClientesCmd(),
	)

	return rootCmd
}

// Execute runs cmd and releases the session store afterwards, also when the
// command failed
func Execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if app != nil {
		if cerr := app.Close(); err == nil {
			err = cerr
		}
		app = nil
	}
	return err
}

func loadSettings() (*config.Settings, error) {
	var opts []config.Option
	if flags.configFile != "" {
		opts = append(opts, config.WithConfigFile(flags.configFile))
	}

	s, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}

	if flags.baseURL != "" {
		s.API.BaseURL = flags.baseURL
	}
	if flags.sessionDriver != "" {
		s.Session.Driver = flags.sessionDriver
	}
	if flags.sessionPath != "" {
		s.Session.Path = flags.sessionPath
	}
	if flags.logLevel != "" {
		s.Log.Level = flags.logLevel
	}
	return s, nil
}
