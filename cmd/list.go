/*
Copyright © 2026 SFUSat <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sfusat/libpop/lib"
	"github.com/spf13/cobra"
)

var listFields []string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <library.lib>",
	Short: "List the symbols of a library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lib.Normalize(args[0])
		if err != nil {
			return fmt.Errorf("failed to normalize path: %s", args[0])
		}

		symbols, err := lib.ReadSymbols(src)
		if err != nil {
			return fmt.Errorf("failed to read library: %w", err)
		}

		header := table.Row{"Name", "Reference", "Footprint"}
		for _, field := range listFields {
			header = append(header, field)
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(header)
		for _, symbol := range symbols {
			row := table.Row{symbol.Name, symbol.Reference, symbol.Field("Footprint")}
			for _, field := range listFields {
				row = append(row, symbol.Field(field))
			}
			t.AppendRow(row)
		}
		t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d symbols", len(symbols))})
		t.Render()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringSliceVarP(&listFields, "field", "f", []string{lib.FieldManufacturerPart}, "extra fields to show")
}
