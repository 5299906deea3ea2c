package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"calfmt/internal/ui"
)

var playCmd = &cobra.Command{
	Use:   "play [PATTERN]",
	Short: "Try patterns interactively",
	Long:  `Play opens a terminal playground that recompiles the pattern and reparses the sample on every keystroke`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	src := "yyyy-MM-dd'T'HH:mm:ss"
	if len(args) == 1 {
		if src, err = s.catalog.Resolve(args[0]); err != nil {
			return err
		}
	}
	model := ui.NewPlayground(src, s.locale, nil)
	program := tea.NewProgram(model, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("playground failed: %w", err)
	}
	return nil
}
