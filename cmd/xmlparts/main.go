// Command xmlparts inspects and edits the custom XML part storage of a
// .docx file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"code.byted.org/khicago/xmlparts"
)

var docxFile string

func main() {
	root := &cobra.Command{
		Use:           "xmlparts",
		Short:         "Key-value storage in a document's custom XML parts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&docxFile, "file", "f", "", "path to the .docx file (required)")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(setCmd(), getCmd(), removeCmd(), listCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "xmlparts:", err)
		os.Exit(1)
	}
}

func openStore() (xmlparts.Store[string], *xmlparts.DocxHost, error) {
	host, err := xmlparts.OpenDocx(docxFile)
	if err != nil {
		return nil, nil, err
	}
	return xmlparts.New[string](xmlparts.WithHost[string](host)), host, nil
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <json-value>",
		Short: "Store a JSON value under a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value any
			if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
				return fmt.Errorf("parse value: %w", err)
			}

			store, host, err := openStore()
			if err != nil {
				return err
			}
			if err := store.Set(context.Background(), args[0], value); err != nil {
				return err
			}
			return host.Save(docxFile)
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			value, err := store.GetValue(context.Background(), args[0])
			if err != nil {
				return err
			}
			if value == nil {
				return fmt.Errorf("no value stored for key %q", args[0])
			}
			out, err := json.MarshalIndent(value, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Delete the part stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, host, err := openStore()
			if err != nil {
				return err
			}
			if err := store.Remove(context.Background(), args[0]); err != nil {
				return err
			}
			return host.Save(docxFile)
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <key>...",
		Short: "Show which of the given keys have a stored part",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openStore()
			if err != nil {
				return err
			}
			for _, key := range args {
				part, err := store.GetPart(context.Background(), key)
				if err != nil {
					return err
				}
				if part != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key, part.Namespace())
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t(absent)\n", key)
				}
			}
			return nil
		},
	}
}
