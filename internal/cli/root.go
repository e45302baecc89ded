package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/computerscienceiscool/ams-params/internal/config"
	apperrors "github.com/computerscienceiscool/ams-params/internal/errors"
)

// runtime carries state shared by subcommands of one invocation
type runtime struct {
	fs  afero.Fs
	v   *viper.Viper
	cfg *config.Config
}

// NewRootCommand builds the command tree over fs
func NewRootCommand(fs afero.Fs) *cobra.Command {
	rt := &runtime{fs: fs, v: config.NewViper(fs)}

	rootCmd := &cobra.Command{
		Use:   "ams-params",
		Short: "Startup parameters loader",
		Long: `ams-params reads the startup parameters file (one parameter per line),
prints the parameters it contains and merges them with parameters given
on the command line.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rt.initConfig,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: ./"+config.DefaultConfigFile+")")
	flags.String("dir", ".", "Directory holding the parameters file")
	flags.String("file", config.DefaultParamsFile, "Parameters file name")
	flags.Int64("memory-limit", config.DefaultMemoryLimit, "Maximum bytes held while loading, file buffer plus line copies (0 = unlimited)")
	flags.Bool("keep-trailing-line", false, "Return text after the last line feed as a parameter")
	flags.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.String("log-format", config.DefaultLogFormat, "Log format (text, json)")

	// Bind flags to viper
	bindings := map[string]string{
		"storage.dir":               "dir",
		"params.file":               "file",
		"memory.limit":              "memory-limit",
		"params.keep_trailing_line": "keep-trailing-line",
		"logging.level":             "log-level",
		"logging.format":            "log-format",
	}
	for key, flag := range bindings {
		_ = rt.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(newShowCommand(rt))
	rootCmd.AddCommand(newMergeCommand(rt))
	rootCmd.AddCommand(newInitCommand(rt))

	return rootCmd
}

// initConfig reads in config file and ENV variables if set
func (rt *runtime) initConfig(cmd *cobra.Command, args []string) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		rt.v.SetConfigFile(path)
	}
	if err := config.ReadInConfig(rt.v); err != nil {
		return err
	}

	cfg, err := config.Load(rt.v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.ConfigureLogging(cfg.Logging); err != nil {
		return err
	}
	rt.cfg = cfg
	return nil
}

// FormatError renders err the way the binary reports it on stderr
func FormatError(err error) string {
	return fmt.Sprintf("Error: %s: %v", apperrors.Kind(err), err)
}

// Execute runs the root command against the OS file system
func Execute() error {
	return NewRootCommand(afero.NewOsFs()).Execute()
}
