package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"calfmt/internal/version"
)

const versionTagline = "patterns in, instants out"

var (
	versionFormat   string
	versionShowHash bool
	versionShowDate bool
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show all build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json|msgpack)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show calfmt build metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		outFormat, err := readFormat(versionFormat, "pretty", "json", "msgpack")
		if err != nil {
			return err
		}
		info := version.Current()
		showHash := versionShowHash || versionShowFull
		showDate := versionShowDate || versionShowFull
		if !showHash {
			info.GitCommit = ""
		} else {
			info.GitCommit = valueOrUnknown(info.GitCommit)
		}
		if !showDate {
			info.BuildDate = ""
		} else {
			info.BuildDate = valueOrUnknown(info.BuildDate)
		}

		if outFormat != "pretty" {
			return writeStructured(cmd.OutOrStdout(), outFormat, info)
		}
		renderVersionPretty(cmd.OutOrStdout(), info, showHash, showDate)
		return nil
	},
}

func renderVersionPretty(out io.Writer, info version.Info, showHash, showDate bool) {
	fmt.Fprintf(out, "calfmt %s: %s\n", version.Colored(), versionTagline)
	if showHash {
		fmt.Fprintf(out, "commit: %s\n", info.GitCommit)
	}
	if showDate {
		fmt.Fprintf(out, "built:  %s\n", info.BuildDate)
	}
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
