/*
Copyright © 2022 Morgan Gangwere <morgan.gangwere@gmail.com>
*/
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/indrora/acf/acf/writer"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:     "c <archive.acf> <file/dir1> [file/dir2] ...",
	Aliases: []string{"create"},
	Short:   "Create an archive",
	Long: `Create an archive from the given files and directories. Inputs are
stored relative to the current directory; directories are descended
recursively.`,
	Example: "acfcli c backup.acf src docs notes.txt",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		archivePath := args[0]
		inputPaths := args[1:]

		slog.Debug("creating archive", "archive", archivePath, "inputs", len(inputPaths))

		w := writer.New()
		w.SetCallback(displayProgress)
		if err := w.Create(archivePath, inputPaths, ".", ""); err != nil {
			fmt.Println()
			return err
		}
		fmt.Println()
		fmt.Println("Archive created successfully.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
