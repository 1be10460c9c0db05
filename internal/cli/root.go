// internal/cli/root.go
package codsim

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/mwiater/codsim/internal/appconfig"
	"github.com/mwiater/codsim/internal/logging"
	"github.com/mwiater/codsim/internal/simulation"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var loadConfig = appconfig.Load

// newSimulator builds the simulator used by every command.
var newSimulator = func(seed uint64) simulation.Simulator {
	return simulation.NewRandomSimulator(seed)
}

var rootCmd = &cobra.Command{
	Use:          "codsim",
	Short:        "codsim: Chain of Draft prompting strategy simulation dashboard",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults)
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) If user did NOT set a flag, copy the config value into the flag so
		//    both pflags and viper reflect the same, final value.
		for _, name := range []string{"debug", "jsonMode"} {
			if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
				_ = cmd.Flags().Set(name, strconv.FormatBool(viper.GetBool(name)))
			}
		}

		// 3) Materialize the fully merged configuration into currentConfig
		//    (flags > config > defaults). This gives other packages a stable snapshot.
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		logging.LogEvent("codsim %s started (config=%q)", cmd.CommandPath(), cfg.ConfigPath)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Close()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// --config (defaults to your existing path)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	// Persistent flags available to all commands
	flags := rootCmd.PersistentFlags()
	flags.Bool("debug", false, "enable debug output")
	flags.Bool("jsonMode", false, "print machine-readable JSON instead of formatted text")
	flags.String("strategy", "", "prompting strategy (ChainOfDraft, ChainOfThought, Standard)")
	flags.String("taskType", "", "task type (Arithmetic, Commonsense, Symbolic)")
	flags.String("model", "", "model (ModelA, ModelB)")
	flags.Int("tokenLimit", simulation.DefaultTokenLimit, fmt.Sprintf("token limit per step (%d-%d)", simulation.MinTokenLimit, simulation.MaxTokenLimit))
	flags.Uint64("seed", 0, "random seed for reproducible runs (0 = time-based)")
	flags.String("export", "", "CSV export path")
	flags.String("chart", "", "PNG chart path")
	flags.String("logFile", "", "log file path")

	// Bind flags to Viper keys (flags override config)
	for _, name := range []string{"debug", "jsonMode", "strategy", "taskType", "model", "tokenLimit", "seed", "export", "chart", "logFile"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and sets safe defaults.
func ensureConfigLoaded() error {
	viper.SetDefault("debug", false)
	viper.SetDefault("jsonMode", false)
	viper.SetDefault("tokenLimit", simulation.DefaultTokenLimit)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			// No file: fine, we'll use defaults/flags
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The file must describe a valid form on its own, before flags apply.
	if _, err := loadConfig(viper.ConfigFileUsed()); err != nil {
		return fmt.Errorf("invalid config file: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	if currentConfig == nil {
		return &appconfig.Config{}
	}
	return currentConfig
}

// Helper accessors (reflect merged Viper state)
func DebugEnabled() bool    { return viper.GetBool("debug") }
func JSONModeEnabled() bool { return viper.GetBool("jsonMode") }
