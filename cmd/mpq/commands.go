package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/mpq"
)

func newExtractCmd(a *app) *cobra.Command {
	var output, pattern string

	cmd := &cobra.Command{
		Use:   "extract <archive>",
		Short: "extracts files from an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				output = a.cfg.Extract.Output
			}

			_, err := a.client.Extract(cmd.Context(), args[0], output, mpq.WithFilter(pattern))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "./", "directory where to output extracted files")
	cmd.Flags().StringVarP(&pattern, "filter", "f", "", "if specified, will only extract files which match the specified glob-pattern")

	return cmd
}

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view <archive> <filename>",
		Short: "views a single file in an archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.client.View(cmd.Context(), args[0], args[1], a.stdout)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "list <archive>",
		Short: "lists files in an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.client.List(cmd.Context(), args[0], mpq.WithFilter(pattern))
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(a.stdout, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "filter", "f", "", "if specified, will only list files which match the specified glob-pattern")

	return cmd
}

func newNewCmd(a *app) *cobra.Command {
	var compress, encrypt, adjustKey bool

	cmd := &cobra.Command{
		Use:   "new <input-dir> <output-archive>",
		Short: "creates an archive from a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := mpq.FileOptions{
				Compress:  a.cfg.Create.Compress,
				Encrypt:   a.cfg.Create.Encrypt,
				AdjustKey: a.cfg.Create.AdjustKey,
			}
			if cmd.Flags().Changed("compress") {
				opts.Compress = compress
			}
			if cmd.Flags().Changed("encrypt") {
				opts.Encrypt = encrypt
			}
			if cmd.Flags().Changed("adjust-key") {
				opts.AdjustKey = adjustKey
			}

			_, err := a.client.Pack(cmd.Context(), args[0], args[1], mpq.WithFileOptions(opts))
			return err
		},
	}

	cmd.Flags().BoolVar(&compress, "compress", true, "compress files")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "encrypt files")
	cmd.Flags().BoolVar(&adjustKey, "adjust-key", false, "adjust encryption keys by file position")

	return cmd
}
