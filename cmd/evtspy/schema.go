package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tkbind/tkbind/catalog"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema for events on the wire",
		RunE: func(cmd *cobra.Command, args []string) error {
			sb, err := json.MarshalIndent(catalog.Describe(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(sb))
			return nil
		},
	}
}
