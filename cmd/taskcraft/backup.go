package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/taskcraft/internal/backup"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write every task, do-later item and the theme to a JSON file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := backup.ExportFile(cmd.Context(), store, args[0])
		exitOnError(err)

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Exported %d tasks and %d do-later items to %s\n",
			green("✓"), len(doc.Tasks), len(doc.Deferred), args[0])
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with the contents of an export file",
	Long: `Replace every task, do-later item and the theme with the contents of a
file written by 'taskcraft export'. Files from a newer major format version
are refused. Existing data is only replaced if the whole file is valid.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := backup.ImportFile(cmd.Context(), store, args[0])
		exitOnError(err)

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Imported %d tasks and %d do-later items (format %s)\n",
			green("✓"), len(doc.Tasks), len(doc.Deferred), doc.FormatVersion)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
}
