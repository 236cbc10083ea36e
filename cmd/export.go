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
	"strings"

	"github.com/sfusat/libpop/lib"
	"github.com/spf13/cobra"
)

var exportSheet string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <library.lib> <out.xlsx>",
	Short: "Export a symbol library.",
	Long:  `Export the symbols of a library file in the xlsx format, one row per symbol.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lib.Normalize(args[0])
		if err != nil {
			return fmt.Errorf("failed to normalize path: %s", args[0])
		}

		dst := args[1]
		if !strings.HasSuffix(dst, ".xlsx") {
			return fmt.Errorf("export file name must be excel file")
		}

		symbols, err := lib.ReadSymbols(src)
		if err != nil {
			return fmt.Errorf("failed to read library: %w", err)
		}

		for _, symbol := range symbols {
			fmt.Printf("%s: %s\n", symbol.Name, symbol.Field("Footprint"))
		}

		if err := lib.ExportSymbols(dst, exportSheet, symbols); err != nil {
			return fmt.Errorf("failed to export library: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportSheet, "sheet", "Symbols", "worksheet name")
}
