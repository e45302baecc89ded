package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/computerscienceiscool/ams-params/internal/config"
	"github.com/computerscienceiscool/ams-params/internal/memory"
	"github.com/computerscienceiscool/ams-params/internal/params"
	"github.com/computerscienceiscool/ams-params/internal/startup"
	"github.com/computerscienceiscool/ams-params/internal/storage"
)

func newShowCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [dir...]",
		Short: "Print the startup parameters",
		Long: `Loads the parameters file from each given directory (default: --dir)
and prints its parameters.`,
		RunE: rt.runShow,
	}
	cmd.Flags().String("format", "text", "Output format (text, json, yaml)")
	return cmd
}

func newMergeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "merge [param...]",
		Short: "Merge file parameters with command-line parameters",
		Long: `Loads the parameters file and appends the given parameters. A name=value
parameter given here replaces file parameters with the same name.`,
		RunE: rt.runMerge,
	}
}

func newInitCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  rt.runInit,
		// init replaces the config file, so it must not need a readable one
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}

func (rt *runtime) runShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if !validFormat(format) {
		return fmt.Errorf("unknown format %q", format)
	}

	dirs := args
	if len(dirs) == 0 {
		dirs = []string{rt.cfg.Storage.Dir}
	}

	results := make([]dirParams, len(dirs))
	var g errgroup.Group
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			p, err := loadParams(rt, dir)
			if err != nil {
				return fmt.Errorf("%s: %w", dir, err)
			}
			results[i] = dirParams{Dir: dir, Params: p}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return writeParams(cmd.OutOrStdout(), format, results)
}

func (rt *runtime) runMerge(cmd *cobra.Command, args []string) error {
	fileParams, err := loadParams(rt, rt.cfg.Storage.Dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range startup.Merge(fileParams, args) {
		fmt.Fprintln(out, p)
	}
	return nil
}

func (rt *runtime) runInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultConfigFile
	if len(args) == 1 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if err := config.WriteDefault(rt.fs, path, force); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// loadParams loads and releases the parameters file under dir
func loadParams(rt *runtime, dir string) ([]string, error) {
	heap := memory.NewHeap(rt.cfg.Memory.Limit)
	loader := params.New(
		storage.New(rt.fs, dir),
		heap,
		params.WithFileName(rt.cfg.Params.File),
		params.WithTrailingLine(rt.cfg.Params.KeepTrailingLine),
		params.WithLogger(log.WithField("dir", dir)),
	)

	list, err := loader.Load()
	if err != nil {
		return nil, err
	}
	defer params.Release(list)

	return list.Strings(), nil
}
