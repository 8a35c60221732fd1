// Command etiles converts a georeferenced point cloud into an OGC 3D
// Tiles 1.1 tileset, grounded on cmd/geo/main.go's cobra command tree
// (here without humacli's HTTP-options wiring, since this is a batch CLI
// converter, not a server).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/envis-space/etiles/internal/config"
	"github.com/envis-space/etiles/internal/convert"
	"github.com/envis-space/etiles/internal/progress"
)

func main() {
	root := &cobra.Command{
		Use:     "etiles",
		Short:   "Convert georeferenced point clouds into OGC 3D Tiles 1.1 tilesets",
		Version: "0.1.0",
	}
	root.AddCommand(newConvertCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newConvertCommand() *cobra.Command {
	var (
		inputPath              string
		outputDirectoryPath    string
		maximumPointsPerOctant uint64
		sourceCRS              uint32
		randomlyShuffle        bool
		shuffleSeedNumber      uint64
		configPath             string
		logLevel               string
	)

	cmd := &cobra.Command{
		Use:   "convert-point-cloud-to-tiles",
		Short: "Convert a point cloud into a tar-packed 3D Tiles 1.1 tileset",
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyDefaults(cmd, defaults)
			if inputPath == "" || outputDirectoryPath == "" {
				return fmt.Errorf("--input-path and --output-directory-path must be set, on the command line or in the --config file")
			}

			opts := convert.Options{
				InputPath:              inputPath,
				OutputDirectoryPath:    outputDirectoryPath,
				MaximumPointsPerOctant: maximumPointsPerOctant,
				SourceCRS:              sourceCRS,
				RandomlyShuffle:        randomlyShuffle,
				ShuffleSeedNumber:      shuffleSeedNumber,
			}

			reporter := progress.NewWithLevel(cmd.OutOrStdout(), progress.ParseLevel(logLevel))
			return convert.Run(opts, reporter)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&inputPath, "input-path", "", "path to the input point cloud")
	flags.StringVar(&outputDirectoryPath, "output-directory-path", "", "output tar path, must end in .tar")
	flags.Uint64Var(&maximumPointsPerOctant, "maximum-points-per-octant", 100000, "maximum points held directly by an octant before it splits")
	flags.Uint32Var(&sourceCRS, "source-crs", 4979, "EPSG code of the input point cloud's spatial reference")
	flags.BoolVar(&randomlyShuffle, "randomly-shuffle", true, "shuffle points deterministically before partitioning")
	flags.Uint64Var(&shuffleSeedNumber, "shuffle-seed-number", 42, "seed used when --randomly-shuffle is set")
	flags.StringVar(&configPath, "config", "", "optional YAML file of flag defaults")
	flags.StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")

	return cmd
}

// applyDefaults overrides any flag not set on the command line with the
// value loaded from the YAML config file, letting explicit command-line
// flags win over both the config file and the flag's built-in default.
func applyDefaults(cmd *cobra.Command, d config.Defaults) {
	flags := cmd.Flags()

	if d.InputPath != nil && !flags.Changed("input-path") {
		_ = flags.Set("input-path", *d.InputPath)
	}
	if d.OutputDirectoryPath != nil && !flags.Changed("output-directory-path") {
		_ = flags.Set("output-directory-path", *d.OutputDirectoryPath)
	}
	if d.MaximumPointsPerOctant != nil && !flags.Changed("maximum-points-per-octant") {
		_ = flags.Set("maximum-points-per-octant", fmt.Sprintf("%d", *d.MaximumPointsPerOctant))
	}
	if d.SourceCRS != nil && !flags.Changed("source-crs") {
		_ = flags.Set("source-crs", fmt.Sprintf("%d", *d.SourceCRS))
	}
	if d.RandomlyShuffle != nil && !flags.Changed("randomly-shuffle") {
		_ = flags.Set("randomly-shuffle", fmt.Sprintf("%t", *d.RandomlyShuffle))
	}
	if d.ShuffleSeedNumber != nil && !flags.Changed("shuffle-seed-number") {
		_ = flags.Set("shuffle-seed-number", fmt.Sprintf("%d", *d.ShuffleSeedNumber))
	}
	if d.LogLevel != nil && !flags.Changed("log-level") {
		_ = flags.Set("log-level", *d.LogLevel)
	}
}
