package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"calfmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "calfmt",
	Short:         "Date-time pattern compiler and formatter",
	Long:          `calfmt compiles date-time patterns into formatters, prints and parses with them, and checks pattern catalogs`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.Version = version.Current().Version

	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.String("config", "", "pattern catalog (default: calfmt.toml found from the working directory up)")
	flags.String("locale", "", "locale for text fields (default: catalog locale, then en)")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 1024, "ring buffer capacity for --trace-mode ring|both")
	flags.String("cpuprofile", "", "write a CPU profile to file")
	flags.String("memprofile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")
}

// main executes the root command and exits with status 1 on error.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
