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
	"bytes"
	"fmt"
	"os"

	"github.com/sfusat/libpop/lib"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <bom>",
	Short: "Import part numbers from a BOM.",
	Long: `Import part numbers from a BOM into the config file.

		- A spreadsheet, in the xlsx format.
		- A comma separated file, in the csv format.

The part number column is found by its header (Digi-Key Part Number,
Part Number, ...). Without a known header the first column is used.
Only the parts list of the config file is changed; everything else in
it, comments included, is kept as written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := lib.Normalize(args[0])
		if err != nil {
			return fmt.Errorf("failed to normalize path: %s", args[0])
		}

		if !lib.Exists(src) {
			return fmt.Errorf("failed to stat file: %s", src)
		}

		bom, err := lib.ReadPartList(src)
		if err != nil {
			return fmt.Errorf("failed to import part list: %w", err)
		}

		dst := viper.ConfigFileUsed()
		if dst == "" {
			dst = "libpop.yaml"
		}

		added, err := importParts(dst, bom)
		if err != nil {
			return err
		}

		for _, part := range added {
			fmt.Println("importing part: " + part)
		}

		fmt.Printf("%d parts imported into %s\n", len(added), dst)
		return nil
	},
}

/*
	Append the parts missing from the parts list of the config file at
	path and return them. Only the parts list is touched; the rest of the
	file is written back as it was read.
*/
func importParts(path string, parts []string) ([]string, error) {
	doc := yaml.Node{}
	if lib.Exists(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}

		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("error parsing config %s: %w", path, err)
		}
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}

	list, err := partsNode(doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", path, err)
	}

	existing := []string{}
	for _, item := range list.Content {
		existing = append(existing, item.Value)
	}

	before := len(lib.UniqueParts(existing))
	added := lib.UniqueParts(append(existing, parts...))[before:]
	for _, part := range added {
		list.Content = append(list.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: part})
	}

	if len(added) == 0 && lib.Exists(path) {
		return added, nil
	}

	buf := bytes.Buffer{}
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("error marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("error writing config: %w", err)
	}

	return added, nil
}

// partsNode finds the parts sequence of the top level mapping, adding it when missing.
func partsNode(root *yaml.Node) (*yaml.Node, error) {
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level is not a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "parts" {
			continue
		}

		value := root.Content[i+1]
		switch {
		case value.Kind == yaml.SequenceNode:
			if len(value.Content) == 0 {
				value.Style = 0
			}
			for _, item := range value.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("parts: line %d: not a part number", item.Line)
				}
			}
			return value, nil
		case value.Kind == yaml.ScalarNode && value.Tag == "!!null":
			// "parts:" with nothing after it
			*value = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", HeadComment: value.HeadComment, LineComment: value.LineComment}
			return value, nil
		default:
			return nil, fmt.Errorf("parts: line %d: not a list", value.Line)
		}
	}

	list := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "parts"}, list)

	return list, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
