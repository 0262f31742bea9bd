package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/taskcraft/internal/tracker"
	"github.com/steveyegge/taskcraft/internal/types"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the display theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(types.ThemeLight), string(types.ThemeDark)},
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		exitOnError(runTheme(cmd.Context(), trk, os.Stdout, name))
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(ctx context.Context, t *tracker.Tracker, w io.Writer, name string) error {
	if name == "" {
		theme, err := t.Theme(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Theme: %s\n", theme)
		return nil
	}
	theme := types.Theme(strings.ToLower(name))
	if err := t.SetTheme(ctx, theme); err != nil {
		return err
	}
	fmt.Fprintf(w, "Theme set to %s\n", theme)
	return nil
}
