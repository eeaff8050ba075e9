// Package formatter renders enhance and craft results for the terminal.
package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/valpere/promptcraft/internal"
)

const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

const barWidth = 10

// craftOutput is the machine-readable shape of a craft result.
type craftOutput struct {
	Prompt string `json:"prompt" yaml:"prompt"`
}

// DisplayAnalysis writes result to w in the given format.
func DisplayAnalysis(w io.Writer, result *internal.AnalysisResult, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	default:
		displayAnalysisHuman(w, result)
	}
	return nil
}

// DisplayCraft writes the crafted prompt to w. Human output is the prompt
// alone so that it can be piped.
func DisplayCraft(w io.Writer, result internal.CraftResult, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, craftOutput{Prompt: string(result)})
	case FormatYAML:
		return writeYAML(w, craftOutput{Prompt: string(result)})
	default:
		fmt.Fprintln(w, strings.TrimRight(string(result), "\n"))
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	output, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(output)
	return err
}

func displayAnalysisHuman(w io.Writer, result *internal.AnalysisResult) {
	cyan := color.New(color.FgCyan, color.Bold)
	white := color.New(color.FgWhite, color.Bold)

	a := result.Analysis

	fmt.Fprintln(w)
	cyan.Fprintln(w, "PROMPT ANALYSIS")
	scoreColor(a.OverallQuality).Fprintf(w, "   Overall quality: %s\n", scoreBar(a.OverallQuality))
	if a.OverallFeedback != "" {
		fmt.Fprintf(w, "   %s\n", a.OverallFeedback)
	}
	fmt.Fprintln(w)

	criteria := []struct {
		name string
		c    internal.Criterion
	}{
		{"Clarity", a.Clarity},
		{"Specificity", a.Specificity},
		{"Actionability", a.Actionability},
		{"Context", a.Context},
	}
	for _, cr := range criteria {
		white.Fprintf(w, "   %-14s", cr.name)
		scoreColor(cr.c.Score).Fprintf(w, "%s\n", scoreBar(cr.c.Score))
		if cr.c.Feedback != "" {
			fmt.Fprintf(w, "   %s\n", color.HiBlackString(cr.c.Feedback))
		}
		fmt.Fprintln(w)
	}

	if len(result.Suggestions) > 0 {
		cyan.Fprintln(w, "SUGGESTIONS")
		for i, s := range result.Suggestions {
			white.Fprintf(w, "   %d. %s\n", i+1, s.Title)
			fmt.Fprintln(w, indent(s.Prompt, "      "))
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "%s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

// scoreBar draws score on a ten-cell bar. Scores outside 1..10 are shown
// as-is next to a clamped bar.
func scoreBar(score int) string {
	filled := score
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return fmt.Sprintf("%s%s %d/10", strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), score)
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 8:
		return color.New(color.FgGreen)
	case score >= 5:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
