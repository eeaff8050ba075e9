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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/valpere/promptcraft/internal"
	"github.com/valpere/promptcraft/internal/client"
	"github.com/valpere/promptcraft/internal/failure"
	"github.com/valpere/promptcraft/internal/formatter"
	"github.com/valpere/promptcraft/internal/language"
	"github.com/valpere/promptcraft/internal/metaprompt"
	"github.com/valpere/promptcraft/internal/provider"
	"github.com/valpere/promptcraft/internal/store"
)

// userError pairs a conventional error string with the sentence shown to the
// user.
type userError struct {
	err string
	msg string
}

func (e *userError) Error() string   { return e.err }
func (e *userError) Message() string { return e.msg }

var (
	errEmptyPrompt = &userError{"prompt cannot be empty", "Prompt cannot be empty."}
	errEmptyTopic  = &userError{"prompt topic cannot be empty", "Prompt topic cannot be empty."}
)

// displayMessage returns the text printed for err: its user message when it
// has one, its error string otherwise.
func displayMessage(err error) string {
	var m interface{ Message() string }
	if errors.As(err, &m) {
		return m.Message()
	}
	return err.Error()
}

// buildClient constructs the model client from the loaded configuration.
// The spinner on w follows the client's request state.
func buildClient(w io.Writer, status string) (*client.Client, error) {
	completer, err := provider.New(cfg.Provider, cfg.BaseURL, nil)
	if err != nil {
		return nil, err
	}

	return client.New(completer, client.Config{
		Model:   cfg.Model,
		Strict:  cfg.Strict,
		OnState: progress(w, status),
	}, logger), nil
}

// progress returns a state observer that shows a spinner while a request is
// in flight. Nothing is drawn when w is not a terminal.
func progress(w io.Writer, status string) func(client.State) {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + status

	return func(state client.State) {
		switch state {
		case client.Requesting:
			s.Start()
		case client.Succeeded, client.Failed:
			s.Stop()
		}
	}
}

// readInput returns the text to send: the contents of file when given, stdin
// when the only argument is "-", and the joined arguments otherwise.
func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	default:
		return strings.Join(args, " "), nil
	}
}

// runRequest sends text in mode, prints the result and records the session.
func runRequest(cmd *cobra.Command, mode metaprompt.Mode, text string) error {
	status := "Analyzing prompt..."
	if mode == metaprompt.Craft {
		status = "Crafting prompt..."
	}

	c, err := buildClient(cmd.ErrOrStderr(), status)
	if err != nil {
		return err
	}

	lang := language.ForInput(cfg.Language, text, nil)
	ctx := cmd.Context()

	sess := internal.Session{
		Mode:      mode.String(),
		Language:  lang,
		Provider:  c.Provider(),
		Model:     c.Model(),
		Input:     text,
		Timestamp: time.Now(),
	}

	var runErr error
	switch mode {
	case metaprompt.Enhance:
		var result *internal.AnalysisResult
		result, runErr = c.Enhance(ctx, text, lang, cfg.APIKey)
		if runErr == nil {
			if out, err := json.Marshal(result); err == nil {
				sess.Output = string(out)
			}
			runErr = formatter.DisplayAnalysis(cmd.OutOrStdout(), result, cfg.Output)
		}
	case metaprompt.Craft:
		var result internal.CraftResult
		result, runErr = c.Craft(ctx, text, lang, cfg.APIKey)
		if runErr == nil {
			sess.Output = string(result)
			runErr = formatter.DisplayCraft(cmd.OutOrStdout(), result, cfg.Output)
		}
	}

	var fe *failure.Error
	if errors.As(runErr, &fe) {
		sess.ErrorKind = fe.Kind.String()
	}
	recordSession(ctx, sess)

	if fe != nil {
		return fe
	}
	return runErr
}

// recordSession writes sess to the history unless it is disabled. History
// errors are logged and never fail the command.
func recordSession(ctx context.Context, sess internal.Session) {
	if !cfg.History {
		return
	}

	db, err := openStore()
	if err != nil {
		logger.Warn("history unavailable", zap.Error(err))
		return
	}
	defer db.Close()

	id, err := db.SaveSession(ctx, sess)
	if err != nil {
		logger.Warn("failed to record session", zap.Error(err))
		return
	}
	logger.Debug("session recorded", zap.String("id", id))
}

func openStore() (*store.Store, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
