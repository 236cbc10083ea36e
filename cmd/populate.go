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
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sfusat/libpop/lib"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	bomFile     string
	interactive bool
)

// populateCmd represents the populate command
var populateCmd = &cobra.Command{
	Use:   "populate [part...]",
	Short: "Add parts to the KiCad libraries",
	Long: `Add parts to the KiCad libraries.

Part numbers are taken, in order, from the config file, the arguments,
the --bom spreadsheet and finally the interactive prompt. Repeated part
numbers are only looked up once. Nothing is written if any part fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		var ask func([]string) []string
		if interactive {
			ask = promptParts
		}

		parts, err := collectParts(cfg, args, bomFile, ask)
		if err != nil {
			return err
		}

		events := lib.NewLogEvents(logger)
		populator, err := lib.NewPopulator(
			cfg,
			lib.NewDigiKey(cfg.Supplier),
			lib.NewDirCatalog(cfg.FootprintDir, events),
			events,
		)
		if err != nil {
			return err
		}

		results, err := populator.Run(cmd.Context(), parts)
		printResults(results)
		if err != nil {
			return fmt.Errorf("libraries left unchanged: %w", err)
		}

		return nil
	},
}

/*
	Gather the part numbers to look up: the config file's list, then the
	arguments, then the BOM and finally whatever ask returns. Repeats are
	dropped and the first occurrence keeps its place.
*/
func collectParts(cfg *lib.Config, args []string, bom string, ask func(queued []string) []string) ([]string, error) {
	parts := append(append([]string{}, cfg.Parts...), args...)
	if bom != "" {
		src, err := lib.Normalize(bom)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize path: %s", bom)
		}

		list, err := lib.ReadPartList(src)
		if err != nil {
			return nil, fmt.Errorf("failed to read part list: %w", err)
		}
		parts = append(parts, list...)
	}

	if ask != nil {
		parts = append(parts, ask(parts)...)
	}

	parts = lib.UniqueParts(parts)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no part numbers given")
	}

	return parts, nil
}

/*
	Read part numbers until an empty line. Parts already queued are
	offered as completions so repeats are easy to spot.
*/
func promptParts(queued []string) []string {
	suggestions := []prompt.Suggest{}
	for _, part := range lib.UniqueParts(queued) {
		suggestions = append(suggestions, prompt.Suggest{Text: part, Description: "queued"})
	}

	fmt.Println("Enter part numbers, one per line. Empty line to finish.")

	parts := []string{}
	for {
		part := strings.TrimSpace(prompt.Input("> ", func(d prompt.Document) []prompt.Suggest {
			return prompt.FilterHasPrefix(suggestions, d.GetWordBeforeCursor(), true)
		}))
		if part == "" {
			return parts
		}

		parts = append(parts, part)
		suggestions = append(suggestions, prompt.Suggest{Text: part, Description: "queued"})
	}
}

func printResults(results []lib.Result) {
	if len(results) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Part", "Family", "Symbol", "Footprint", "Result"})
	for _, result := range results {
		t.AppendRow(table.Row{result.Part, result.Family, result.Symbol, result.Footprint, result.Outcome})
	}
	t.Render()
}

func init() {
	rootCmd.AddCommand(populateCmd)

	populateCmd.Flags().StringVar(&bomFile, "bom", "", "spreadsheet (xlsx or csv) with a column of part numbers")
	populateCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for part numbers")
	populateCmd.Flags().Bool("strict", false, "reject parts outside the capacitor, inductor and resistor families")
	populateCmd.Flags().String("dir", "", "directory holding the library files")

	_ = viper.BindPFlag("strict", populateCmd.Flags().Lookup("strict"))
	_ = viper.BindPFlag("library_dir", populateCmd.Flags().Lookup("dir"))
}
