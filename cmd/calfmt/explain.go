package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calfmt/internal/diagfmt"
	"calfmt/internal/lexer"
	"calfmt/internal/pattern"
	"calfmt/internal/token"
)

var explainCmd = &cobra.Command{
	Use:   "explain [flags] PATTERN",
	Short: "Show what a pattern compiles to",
	Long:  `Explain compiles a pattern and prints its canonical rendering and the meaning of each letter run`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	explainCmd.Flags().Bool("tokens", false, "also print the pattern tokens")
}

func runExplain(cmd *cobra.Command, args []string) error {
	showTokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
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
	f, err := s.compile(src)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, f.String())

	tokens := lexer.Tokenize(src, lexer.Options{})
	meanings := letterMeanings()
	for _, tok := range tokens {
		if tok.Kind != token.Letters {
			continue
		}
		m, ok := meanings[tok.Letter]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %-8s %s\n", tok.Text, m)
	}

	if showTokens {
		fmt.Fprintln(out)
		return diagfmt.FormatTokensPretty(out, tokens, src)
	}
	return nil
}

func letterMeanings() map[byte]string {
	letters := pattern.Letters()
	out := make(map[byte]string, len(letters))
	for _, l := range letters {
		out[l.Letter] = l.Meaning
	}
	return out
}
