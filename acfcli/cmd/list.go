/*
Copyright © 2022 Morgan Gangwere <morgan.gangwere@gmail.com>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/indrora/acf/acf/format"
	"github.com/indrora/acf/acf/platform"
	"github.com/indrora/acf/acf/reader"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "l <archive.acf>",
	Aliases: []string{"list"},
	Short:   "List the contents of an archive",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archivePath := args[0]

		entries, err := reader.New().List(archivePath)
		if err != nil {
			return err
		}

		fmt.Printf("Listing contents of %s:\n\n", archivePath)
		fmt.Printf("%-22s%-10s%-14s%-12s%s\n", "DateTime", "Attr", "Size", "CRC32", "Path")
		fmt.Println(strings.Repeat("-", 80))
		for _, entry := range entries {
			fmt.Printf("%-22s%-10s%-14d%-12s%s\n",
				dosTimeString(entry.FileDateTime),
				attrString(entry.FileAttribute),
				entry.OriginalSize,
				fmt.Sprintf("%08x", entry.CRC32),
				entry.Path)
		}
		return nil
	},
}

func dosTimeString(v uint32) string {
	if v == 0 {
		return "1980-01-01 00:00:00"
	}
	return format.DosTimeToTime(v).Format("2006-01-02 15:04:05")
}

func attrString(attr uint8) string {
	flag := func(bit uint8, c byte) byte {
		if attr&bit != 0 {
			return c
		}
		return '-'
	}
	return string([]byte{
		flag(platform.AttrReadOnly, 'R'),
		flag(platform.AttrHidden, 'H'),
		flag(platform.AttrSystem, 'S'),
		flag(platform.AttrDirectory, 'D'),
		flag(platform.AttrArchive, 'A'),
	})
}

func init() {
	rootCmd.AddCommand(listCmd)
}
