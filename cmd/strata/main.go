package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"

	gojson "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/astralkit/strata/pkg/config"
	"github.com/astralkit/strata/pkg/dsv"
	"github.com/astralkit/strata/pkg/logger"
	"github.com/astralkit/strata/pkg/tabular"
	"github.com/astralkit/strata/pkg/textfile"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.SetEnvPrefix("STRATA")
	viper.AutomaticEnv()

	root := &cobra.Command{
		Use:   "strata",
		Short: "Strata - DSV ingestion and column type profiling",
		Long: `Strata ingests delimiter-separated text and exposes it as tabular data,
inferring a semantic datatype per column. It streams inputs larger than
available memory using bounded buffers.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Strata v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(newProfileCommand())
	root.AddCommand(newHeadCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a zap logger honoring the log level flag.
func newLogger(level string) (*zap.Logger, error) {
	if level == "" {
		level = "info"
	}
	return logger.New(logger.Config{Level: level, Encoding: "json"})
}

// loadReadConfig resolves the effective read configuration from an optional
// config file overlaid with command-line flags.
func loadReadConfig(cmd *cobra.Command, configFile string) (config.ReadConfig, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("delimiter") {
		cfg.Delimiter, _ = cmd.Flags().GetString("delimiter")
	}
	if cmd.Flags().Changed("bookend") {
		cfg.Bookend, _ = cmd.Flags().GetString("bookend")
	}
	if cmd.Flags().Changed("header-rows") {
		cfg.HeaderRows, _ = cmd.Flags().GetInt("header-rows")
	}
	if cmd.Flags().Changed("skip-footer-rows") {
		cfg.SkipFooterRows, _ = cmd.Flags().GetInt("skip-footer-rows")
	}
	if cmd.Flags().Changed("chunk-size") {
		cfg.ChunkSize, _ = cmd.Flags().GetInt("chunk-size")
	}

	return cfg, cfg.Validate()
}

func newProfileCommand() *cobra.Command {
	var (
		inputFile  string
		configFile string
		format     string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile the columns of a DSV file",
		Long: `Profile reads a delimiter-separated file, resolves its headers, and
reports the inferred datatype and value count of every column.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := loadReadConfig(cmd, configFile)
			if err != nil {
				return err
			}

			src, err := textfile.Open(inputFile, textfile.Options{})
			if err != nil {
				return err
			}
			defer src.Close()

			reader, err := dsv.NewRowReader(src, cfg.StreamOptions())
			if err != nil {
				return err
			}

			var rows [][]string
			for reader.Next() {
				rows = append(rows, reader.Row())
			}
			if err := reader.Err(); err != nil {
				return err
			}

			logger.Info("input materialized",
				zap.String("path", inputFile),
				zap.Int("rows", len(rows)))

			profiles, err := dsv.ProfileColumns(rows, cfg.HeaderRows)
			if err != nil {
				return err
			}

			return writeProfiles(os.Stdout, profiles, format)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Path to the DSV file (required)")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to a YAML read configuration")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().String("delimiter", ",", "Field delimiter")
	cmd.Flags().String("bookend", `"`, "Quote character")
	cmd.Flags().Int("header-rows", 1, "Number of header rows to merge")
	cmd.Flags().Int("chunk-size", 1000, "Streaming read-ahead in rows (min 100)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	_ = cmd.MarkFlagRequired("input")
	_ = viper.BindPFlag("delimiter", cmd.Flags().Lookup("delimiter"))
	_ = viper.BindPFlag("chunk_size", cmd.Flags().Lookup("chunk-size"))

	return cmd
}

func newHeadCommand() *cobra.Command {
	var (
		inputFile  string
		configFile string
		rowCount   int
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "head",
		Short: "Print the first rows of a DSV file as JSON objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := loadReadConfig(cmd, configFile)
			if err != nil {
				return err
			}

			src, err := textfile.Open(inputFile, textfile.Options{})
			if err != nil {
				return err
			}
			defer src.Close()

			reader, err := dsv.NewRowReader(src, cfg.StreamOptions())
			if err != nil {
				return err
			}

			table, err := tabular.NewStreamingTable(reader, tabular.StreamOptions{
				HeaderRows:     cfg.HeaderRows,
				SkipFooterRows: cfg.SkipFooterRows,
				SkipEmptyRows:  cfg.SkipEmptyRows,
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			enc := gojson.NewEncoder(os.Stdout)
			printed := 0
			for row := range table.RowMaps() {
				if printed >= rowCount {
					break
				}
				if err := enc.Encode(row); err != nil {
					return err
				}
				printed++
			}
			return table.Err()
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Path to the DSV file (required)")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to a YAML read configuration")
	cmd.Flags().IntVarP(&rowCount, "rows", "n", 10, "Number of rows to print")
	cmd.Flags().String("delimiter", ",", "Field delimiter")
	cmd.Flags().String("bookend", `"`, "Quote character")
	cmd.Flags().Int("header-rows", 1, "Number of header rows to merge")
	cmd.Flags().Int("skip-footer-rows", 0, "Number of trailing rows to exclude")
	cmd.Flags().Int("chunk-size", 1000, "Streaming read-ahead in rows (min 100)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// writeProfiles renders column profiles in the requested format with
// deterministic column ordering.
func writeProfiles(out *os.File, profiles map[string]dsv.ColumnProfile, format string) error {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	type entry struct {
		Name     string `json:"name" yaml:"name"`
		Datatype string `json:"datatype" yaml:"datatype"`
		Count    int    `json:"count" yaml:"count"`
	}
	entries := make([]entry, 0, len(names))
	for _, name := range names {
		p := profiles[name]
		entries = append(entries, entry{Name: name, Datatype: p.Type.String(), Count: p.Count})
	}

	switch format {
	case "yaml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "json":
		enc := gojson.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	default:
		return fmt.Errorf("unknown output format %q (expected json or yaml)", format)
	}
}
