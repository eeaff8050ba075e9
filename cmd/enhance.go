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
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/promptcraft/internal/metaprompt"
)

var enhanceInputFile string

var enhanceCmd = &cobra.Command{
	Use:   "enhance [PROMPT|-]",
	Short: "Score a prompt and suggest improved versions",
	Long: `Send a prompt to the model for critique.

The reply scores the prompt from 1 to 10 on clarity, specificity,
actionability and context, gives an overall score with a summary, and
proposes three improved versions.

The prompt is read from the arguments, from stdin when the argument is "-",
or from a file with --input.

Examples:
  promptcraft enhance "Write a blog post about AI"
  promptcraft enhance -l Ukrainian -o json - < prompt.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args, enhanceInputFile)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return errEmptyPrompt
		}
		return runRequest(cmd, metaprompt.Enhance, text)
	},
}

func init() {
	rootCmd.AddCommand(enhanceCmd)

	enhanceCmd.Flags().StringVarP(&enhanceInputFile, "input", "i", "", "Read the prompt from a file")
}
