// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the abstract-extractor CLI. Given a
// research paper PDF it finds the abstract on the first pages and writes it
// to a standalone PDF.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/abstract-extractor/internal/abstract"
	"github.com/pdiddy/abstract-extractor/internal/convert"
	"github.com/pdiddy/abstract-extractor/internal/logging"
	"github.com/pdiddy/abstract-extractor/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is loaded once in PersistentPreRunE and shared by every command.
	cfg types.Config

	// configUsed is the config file read by initConfig, if any.
	configUsed string

	// closeLog flushes the log file opened in PersistentPreRunE.
	closeLog = func() error { return nil }
)

// rootCmd extracts the abstract of a single PDF.
var rootCmd = &cobra.Command{
	Use:   "abstract-extractor <paper.pdf>",
	Short: "Extract the abstract of a research paper into its own PDF",
	Long: `abstract-extractor reads the first pages of a research paper PDF, finds the
abstract (a section labeled Abstract, Summary, or Overview, or else the first
substantial paragraph), and writes it to <name>_abstract.pdf next to the input.

Use the batch subcommand to process a directory of papers.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		loaded, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = loaded
		cleanup, err := logging.Setup(cfg.Log, verbose)
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		closeLog = cleanup
		if configUsed != "" {
			slog.Debug("using config file", "path", configUsed)
		}
		return nil
	},
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	input := args[0]
	output, _ := cmd.Flags().GetString("output")
	title, _ := cmd.Flags().GetString("title")
	printOnly, _ := cmd.Flags().GetBool("print")
	metadata, _ := cmd.Flags().GetBool("metadata")

	conv, done, err := newConverter(cfg)
	if err != nil {
		return err
	}
	defer done()

	opts := convert.Options{OutputPath: output, Title: title, Metadata: metadata}
	if printOnly {
		opts.TextOut = cmd.OutOrStdout()
	}

	paper, err := conv.ConvertPaper(cmd.Context(), input, opts)
	if err != nil {
		if abstract.IsSoft(err) {
			return fmt.Errorf("no abstract found in %s", input)
		}
		return err
	}
	if !printOnly {
		fmt.Fprintf(cmd.OutOrStdout(), "Abstract written to %s (%s, %d chars)\n",
			paper.OutputPath, paper.Abstract.Method, len([]rune(paper.Abstract.Text)))
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./abstract-extractor.yaml or ~/.config/abstract-extractor/abstract-extractor.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug detail to stderr")
	rootCmd.PersistentFlags().Int("max-pages", types.DefaultMaxPages, "number of leading pages to scan")
	rootCmd.PersistentFlags().String("backend", string(types.BackendNative), "text backend: native or pdftotext")
	rootCmd.PersistentFlags().Bool("catalog", false, "record runs in the local catalog")
	_ = viper.BindPFlag("extraction.max_pages", rootCmd.PersistentFlags().Lookup("max-pages"))
	_ = viper.BindPFlag("text.backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("catalog.enabled", rootCmd.PersistentFlags().Lookup("catalog"))

	rootCmd.Flags().StringP("output", "o", "", "output PDF path (default: <input>_abstract.pdf)")
	rootCmd.Flags().String("title", "", "title rendered above the abstract (default: Abstract from <name>)")
	rootCmd.Flags().Bool("print", false, "print the abstract text to stdout instead of writing a PDF")
	rootCmd.Flags().Bool("metadata", false, "write a YAML sidecar next to the output PDF")
	rootCmd.MarkFlagsMutuallyExclusive("print", "output")
	rootCmd.MarkFlagsMutuallyExclusive("print", "metadata")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("abstract-extractor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "abstract-extractor"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("ABSTRACT_EXTRACTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		configUsed = viper.ConfigFileUsed()
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = closeLog()
	if err != nil {
		os.Exit(1)
	}
}
