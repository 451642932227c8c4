/*
Copyright © 2022 Morgan Gangwere <morgan.gangwere@gmail.com>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/indrora/acf/acf/reader"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:     "x <archive.acf> [output_path]",
	Aliases: []string{"extract"},
	Short:   "Extract an archive",
	Long:    `Extract every entry of the archive to the given path (default ".")`,
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		archivePath := args[0]
		outputPath := "."
		if len(args) > 1 {
			outputPath = args[1]
		}

		r := reader.New()
		r.SetCallback(displayProgress)
		if err := r.ExtractAll(archivePath, outputPath); err != nil {
			fmt.Println()
			return err
		}
		fmt.Println()
		fmt.Println("Archive extracted successfully.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
