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
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/promptcraft/internal"
	"github.com/valpere/promptcraft/internal/formatter"
	"github.com/valpere/promptcraft/internal/metaprompt"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse previous requests",
	Long: `List, inspect and delete recorded enhance and craft sessions.

Session ids may be shortened to any unique prefix.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		sessions, err := db.ListSessions(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		if len(sessions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions in history.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tMODE\tLANGUAGE\tSTATUS\tINPUT")
		for _, s := range sessions {
			status := "ok"
			if s.ErrorKind != "" {
				status = s.ErrorKind
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				shortID(s.ID), s.Timestamp.Local().Format("2006-01-02 15:04"),
				s.Mode, s.Language, status, snippet(s.Input, 40))
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recorded session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := loadSession(cmd, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if cfg.Output == formatter.FormatHuman {
			fmt.Fprintf(out, "ID:       %s\n", sess.ID)
			fmt.Fprintf(out, "Created:  %s\n", sess.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Mode:     %s\n", sess.Mode)
			fmt.Fprintf(out, "Language: %s\n", sess.Language)
			fmt.Fprintf(out, "Model:    %s/%s\n", sess.Provider, sess.Model)
			fmt.Fprintf(out, "Input:\n%s\n", sess.Input)
		}

		if sess.ErrorKind != "" {
			fmt.Fprintf(out, "Failed:   %s\n", sess.ErrorKind)
			return nil
		}

		if sess.Mode == metaprompt.Enhance.String() {
			result, err := decodeStored(sess)
			if err != nil {
				return err
			}
			return formatter.DisplayAnalysis(out, result, cfg.Output)
		}
		if cfg.Output == formatter.FormatHuman {
			fmt.Fprintln(out, "Output:")
		}
		return formatter.DisplayCraft(out, internal.CraftResult(sess.Output), cfg.Output)
	},
}

var historyUseCmd = &cobra.Command{
	Use:   "use <id> [n]",
	Short: "Print a stored suggestion or crafted prompt",
	Long: `Print the n-th suggestion (1-based, default 1) of an enhance session, or
the prompt of a craft session, so it can be fed back in:

  promptcraft history use 3f2a 2 | promptcraft enhance -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 1
		if len(args) == 2 {
			var err error
			n, err = strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid suggestion number %q", args[1])
			}
		}

		sess, err := loadSession(cmd, args[0])
		if err != nil {
			return err
		}

		prompt, err := pickPrompt(sess, n)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), prompt)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := db.DeleteSession(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted session: %s\n", id)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ClearSessions(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d sessions from history.\n", n)
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total sessions:   %d\n", stats.Total)
		fmt.Fprintf(out, "Enhance sessions: %d\n", stats.Enhance)
		fmt.Fprintf(out, "Craft sessions:   %d\n", stats.Craft)
		fmt.Fprintf(out, "Failed sessions:  %d\n", stats.Failed)
		return nil
	},
}

func loadSession(cmd *cobra.Command, id string) (*internal.Session, error) {
	db, err := openStore()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	sess, err := db.GetSession(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func decodeStored(sess *internal.Session) (*internal.AnalysisResult, error) {
	var result internal.AnalysisResult
	if err := json.Unmarshal([]byte(sess.Output), &result); err != nil {
		return nil, fmt.Errorf("stored analysis for %s is unreadable: %w", shortID(sess.ID), err)
	}
	return &result, nil
}

// pickPrompt returns the n-th suggestion of an enhance session, or the
// crafted prompt when n is 1.
func pickPrompt(sess *internal.Session, n int) (string, error) {
	if sess.ErrorKind != "" {
		return "", fmt.Errorf("session %s failed (%s) and has no output", shortID(sess.ID), sess.ErrorKind)
	}

	if sess.Mode != metaprompt.Enhance.String() {
		if n != 1 {
			return "", fmt.Errorf("craft session %s has a single prompt", shortID(sess.ID))
		}
		return strings.TrimRight(sess.Output, "\n"), nil
	}

	result, err := decodeStored(sess)
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(result.Suggestions) {
		return "", fmt.Errorf("session %s has %d suggestions, got %d", shortID(sess.ID), len(result.Suggestions), n)
	}
	return result.Suggestions[n-1].Prompt, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// snippet flattens text to one line of at most limit runes.
func snippet(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) > limit {
		return string(r[:limit-3]) + "..."
	}
	return text
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of sessions to list (0 for all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyUseCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatsCmd)
}
