/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/promptcraft/internal/language"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List suggested output languages",
	Long: `List the suggested output languages for --language.

Any other language name is passed to the model as written, and BCP 47 tags
such as "uk" or "pt-BR" are expanded to their English name. Use
"--language auto" to answer in the language the input is written in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		current := language.Resolve(cfg.Language)
		if language.IsAuto(cfg.Language) {
			current = ""
			fmt.Fprintln(cmd.OutOrStdout(), "Output language: detected from input")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TAG\tLANGUAGE\t")
		for _, opt := range language.Supported {
			marker := ""
			if opt.Name == current {
				marker = "(current)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", opt.Tag, opt.Name, marker)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
