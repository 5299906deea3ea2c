package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calfmt/internal/diag"
	"calfmt/internal/diagfmt"
	"calfmt/internal/lexer"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] PATTERN",
	Short: "Tokenize a pattern",
	Long:  `Tokenize breaks a pattern down into letter runs, literals and brackets`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	outFormat, err := readFormat(formatFlag, "pretty", "json")
	if err != nil {
		return err
	}
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	src, err := s.catalog.Resolve(args[0])
	if err != nil {
		return err
	}
	bag := diag.NewBag(100)
	tokens := lexer.Tokenize(src, lexer.Options{Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag})})

	if bag.Len() > 0 {
		bag.Sort()
		bag.Dedup()
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, src, diagfmt.PrettyOpts{Color: s.color})
	}

	switch outFormat {
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), tokens)
	default:
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), tokens, src)
	}
}
