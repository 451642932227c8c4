/*
Copyright © 2022 Morgan Gangwere <morgan.gangwere@gmail.com>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2b"

	"github.com/indrora/acf/acf/format"
	"github.com/indrora/acf/acf/reader"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <archive.acf>",
	Short: "Investigate the structure of an archive",
	Long: `Investigate and show the structure of an ACF archive: the file
header, every central-directory entry, and a BLAKE2b-512 digest of the
archive file. The parsed central directory can be exported as CBOR for
external tooling.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archivePath := args[0]
		verbose, _ := cmd.Flags().GetBool("verbose")
		tocPath, _ := cmd.Flags().GetString("toc")

		entries, err := reader.New().List(archivePath)
		if err != nil {
			return err
		}

		fh, err := os.Open(archivePath)
		if err != nil {
			return errors.Wrapf(err, "could not open %s", archivePath)
		}
		defer fh.Close()

		header, err := format.ReadHeader(fh)
		if err != nil {
			return err
		}

		fmt.Printf("====== Header ======\n")
		fmt.Printf("Magic: %08x\n", header.Magic)
		fmt.Printf("Version: %08x\n", header.Version)
		fmt.Printf("Central directory: offset %d, %d entries, crc32 %08x\n",
			header.CentralDirOffset, header.EntryCount, header.CentralDirCRC32)

		for i, entry := range entries {
			explainEntry(i, entry, verbose)
		}

		hasher, err := blake2b.New512(nil)
		if err != nil {
			return errors.Wrap(err, "failed to initialize BLAKE2b hash")
		}
		if _, err = fh.Seek(0, io.SeekStart); err != nil {
			return err
		}
		if _, err = io.Copy(hasher, fh); err != nil {
			return errors.Wrap(err, "failed to hash archive")
		}
		fmt.Printf("\nBLAKE2b-512: %x\n", hasher.Sum(nil))

		if tocPath != "" {
			data, err := cbor.Marshal(entries)
			if err != nil {
				return errors.Wrap(err, "failed to marshal central directory to CBOR")
			}
			if err = os.WriteFile(tocPath, data, 0o644); err != nil {
				return errors.Wrapf(err, "failed to write %s", tocPath)
			}
			fmt.Printf("Wrote central directory to %s\n", tocPath)
		}
		return nil
	},
}

func explainEntry(index int, entry format.Entry, verbose bool) {
	fmt.Printf("====== Entry %d ======\n", index)
	fmt.Printf("Path: %s\n", entry.Path)
	fmt.Printf("Type: %d\n", entry.Type)
	fmt.Printf("Size: %d (compressed %d at offset %d)\n",
		entry.OriginalSize, entry.CompressedSize, entry.DataOffset)
	fmt.Printf("CRC32: %08x\n", entry.CRC32)
	fmt.Printf("DateTime: %s\n", dosTimeString(entry.FileDateTime))
	fmt.Printf("Attributes: %s\n", attrString(entry.FileAttribute))
	if verbose {
		spew.Dump(entry)
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolP("verbose", "v", false, "Dump each entry in full")
	inspectCmd.Flags().String("toc", "", "Write the parsed central directory to this file as CBOR")
}
