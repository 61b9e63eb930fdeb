package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/listkit/list"
	"github.com/joshuapare/listkit/list/printer"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	debug     bool
	formatArg string

	outFormat printer.Format
)

var rootCmd = &cobra.Command{
	Use:   "listctl",
	Short: "Exercise and benchmark the list engine",
	Long: `listctl drives the list engine from the command line. It runs the
scripted self-test scenarios for indexed, linked and associative lists and
measures their insert and random-access throughput.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		f, err := printer.ParseFormat(formatArg)
		if err != nil {
			return err
		}
		outFormat = f
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors and results")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Trace every list operation to stderr")
	rootCmd.PersistentFlags().
		StringVarP(&formatArg, "format", "f", string(printer.FormatText), "Output format: text, json or msgpack")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// newEngine returns a tracking engine honouring --debug.
func newEngine(debugOut io.Writer) *list.Engine {
	return list.NewEngine(list.InitOptions{
		TrackAll:    true,
		Debug:       debug,
		DebugWriter: debugOut,
	})
}

// printerOptions returns printer options for the selected output format.
func printerOptions() printer.Options {
	opts := printer.DefaultOptions()
	opts.Format = outFormat
	return opts
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(w io.Writer, format string, args ...any) {
	if !quiet {
		fmt.Fprintf(w, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(w io.Writer, format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(w, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}
