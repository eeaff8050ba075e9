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
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/promptcraft/internal/config"
	"github.com/valpere/promptcraft/internal/failure"
	"github.com/valpere/promptcraft/internal/language"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show settings and manage the API key",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.FilePath(settings)
		if err != nil {
			path = "(none)"
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "config file\t%s\n", path)
		fmt.Fprintf(w, "provider\t%s\n", cfg.Provider)
		fmt.Fprintf(w, "model\t%s\n", cfg.Model)
		if cfg.BaseURL != "" {
			fmt.Fprintf(w, "base url\t%s\n", cfg.BaseURL)
		}
		fmt.Fprintf(w, "api key\t%s\n", config.MaskKey(cfg.APIKey))
		lang := language.Resolve(cfg.Language)
		if language.IsAuto(cfg.Language) {
			lang = "auto (detected from input)"
		}
		fmt.Fprintf(w, "language\t%s\n", lang)
		fmt.Fprintf(w, "strict\t%v\n", cfg.Strict)
		fmt.Fprintf(w, "output\t%s\n", cfg.Output)
		fmt.Fprintf(w, "history\t%v\n", cfg.History)
		fmt.Fprintf(w, "database\t%s\n", cfg.DBPath)
		return w.Flush()
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [KEY|-]",
	Short: "Store the API key in the config file",
	Long: `Store the API key in the config file with owner-only permissions.

Pass "-" or no argument to read the key from stdin, which keeps it out of
the shell history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := ""
		if len(args) == 1 && args[0] != "-" {
			key = args[0]
		} else {
			if len(args) == 0 {
				fmt.Fprint(cmd.ErrOrStderr(), "API key: ")
			}
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("failed to read API key: %w", err)
			}
			key = line
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return errors.New("API key cannot be empty")
		}

		path, err := config.SaveAPIKey(settings, key)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "API key saved to %s\n", path)
		return nil
	},
}

var configClearKeyCmd = &cobra.Command{
	Use:   "clear-key",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ClearAPIKey(settings)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "API key removed from %s\n", path)
		if os.Getenv("GEMINI_API_KEY") != "" || os.Getenv(config.EnvPrefix+"_API_KEY") != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "Note: an API key is still set in the environment.")
		}
		return nil
	},
}

var configTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test request to check the API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildClient(cmd.ErrOrStderr(), "Testing API key...")
		if err != nil {
			return err
		}

		if err := c.Verify(cmd.Context(), cfg.APIKey); err != nil {
			return failure.Classify(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "API key is valid (%s, %s).\n", c.Provider(), c.Model())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configClearKeyCmd)
	configCmd.AddCommand(configTestCmd)
}
