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

var craftInputFile string

var craftCmd = &cobra.Command{
	Use:   "craft [TOPIC|-]",
	Short: "Build a structured prompt from a short topic",
	Long: `Ask the model to write a complete prompt for the given topic using the
C.R.A.F.T. method: Context, Role, Action, Format and Target Audience.

The crafted prompt is printed as the model wrote it, so human output can be
piped straight into another tool.

Examples:
  promptcraft craft "marketing plan for a sci-fi movie"
  promptcraft craft -l French "onboarding email" | promptcraft enhance -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args, craftInputFile)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return errEmptyTopic
		}
		return runRequest(cmd, metaprompt.Craft, text)
	},
}

func init() {
	rootCmd.AddCommand(craftCmd)

	craftCmd.Flags().StringVarP(&craftInputFile, "input", "i", "", "Read the topic from a file")
}
