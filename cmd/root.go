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
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/valpere/promptcraft/internal/config"
	"github.com/valpere/promptcraft/internal/logging"
)

var version = "0.1.0"

var (
	cfgFile  string
	settings *viper.Viper
	cfg      *config.Config
	logger   = zap.NewNop()
)

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	"provider": "provider",
	"model":    "model",
	"base-url": "base_url",
	"api-key":  "api_key",
	"db":       "db",
	"language": "language",
	"strict":   "strict",
	"output":   "output",
	"verbose":  "verbose",
}

var rootCmd = &cobra.Command{
	Use:   "promptcraft",
	Short: "Critique and craft prompts for generative language models",
	Long: `A CLI application that uses a generative language model to critique
and improve prompts.

  enhance   score a prompt on clarity, specificity, actionability and context
            and suggest three improved versions
  craft     turn a short topic into a structured C.R.A.F.T. prompt

Supported providers: Gemini (default), OpenRouter

Set the API key with "promptcraft config set-key" or the GEMINI_API_KEY
environment variable.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", displayMessage(err))
		os.Exit(1)
	}
}

// loadSettings resolves flags, environment and the config file into cfg.
func loadSettings(cmd *cobra.Command, args []string) error {
	settings = viper.New()
	config.SetDefaults(settings)

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := settings.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", flag, err)
			}
		}
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		settings.Set("history", false)
	}

	if err := config.ReadFile(settings, cfgFile); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(settings)
	if err != nil {
		return err
	}

	logger, err = logging.New(cfg.Verbose)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		zap.String("config_file", settings.ConfigFileUsed()),
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Bool("api_key_set", cfg.APIKey != ""))
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.promptcraft.yaml)")
	pf.String("provider", "", "Model provider: gemini, openrouter (default gemini)")
	pf.String("model", "", "Model id (default depends on provider)")
	pf.String("base-url", "", "Override the provider endpoint")
	pf.String("api-key", "", "API key (overrides environment and config file)")
	pf.String("db", "", "History database path (default "+config.DefaultDBPath+")")
	pf.Bool("no-history", false, "Do not record this request in the history")
	pf.StringP("language", "l", "", "Output language name or tag (default "+config.DefaultLang+")")
	pf.Bool("strict", false, "Validate enhance replies against the full schema")
	pf.StringP("output", "o", "", "Output format: human, json, yaml (default human)")
	pf.BoolP("verbose", "v", false, "Enable debug logging on stderr")
}
