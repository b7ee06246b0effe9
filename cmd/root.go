// Package cmd provides the entrypoint for the token-monitor cli.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/isometry/token-monitor/internal/config"
	"github.com/isometry/token-monitor/internal/helpers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigFileEnv overrides the default configuration file path.
const ConfigFileEnv = "TOKEN_MONITOR_CONFIG"

var (
	configFilePath string
	logger         = helpers.NewNoopLogger()
)

type boundEnvVar[T argType] struct {
	Name, Description string
	Env, Short        *string
	Hidden            bool
	// Count binds an int as a repeatable counter flag, e.g. -vv.
	Count bool
}

// New returns the root command for the token-monitor.
func New() *cobra.Command {
	dashboardCmd, serviceCmd, lambdaCmd := cmdDashboard(), cmdService(), cmdLambda()
	cmd := &cobra.Command{
		Use:           "token-monitor",
		Short:         "Monitor tokens through the webhook API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			config.Global.Mode = strings.TrimSpace(strings.ToLower(config.Global.Mode))
			logger = helpers.NewLogger(os.Stdout,
				config.Global.Logging.Verbosity,
				config.Global.Logging.CallerTrace).With("mode", config.Global.Mode)
			logger.Debug("configuration loaded", slog.String("file", configFilePath), slog.String("command", cmd.Name()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch config.Global.Mode {
			case config.ModeDashboard:
				return dashboardCmd.RunE(cmd, args)
			case config.ModeService:
				return serviceCmd.RunE(cmd, args)
			case config.ModeLambda:
				return lambdaCmd.RunE(cmd, args)
			default:
				return fmt.Errorf("invalid mode: %s", config.Global.Mode)
			}
		},
	}

	// Root command flags
	configFilePath = "config.yaml"
	if v, ok := os.LookupEnv(ConfigFileEnv); ok {
		configFilePath = v
	}
	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", configFilePath, fmt.Sprintf("[%s] path to the configuration file", ConfigFileEnv))

	// Configuration loading & defaults
	config.Reset()
	viper.Reset()
	if err := errors.Join(
		config.LoadFromFile(configFilePath),
		config.SetDefaults(),
	); err != nil {
		panic(err)
	}

	// Dynamic flags
	setupDynamicFlags(cmd)
	dashboardFlags(cmd.Flags())

	// Subcommands
	cmd.AddCommand(
		dashboardCmd,
		serviceCmd,
		lambdaCmd,
		cmdTokens(),
		cmdStats(),
		cmdStatus(),
		cmdSettings(),
		cmdAnalytics(),
	)

	return cmd
}

func setupDynamicFlags(cmd *cobra.Command) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(replacer)

	bindEnvMap(cmd, envMapString)
	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapInt)
	bindEnvMap(cmd, envMapFloat)
	bindEnvMap(cmd, envMapDuration)
	bindEnvMap(cmd, svcEnvMapString)
	bindEnvMap(cmd, svcEnvMapDuration)
}
