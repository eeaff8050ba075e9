package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/valpere/promptcraft/internal"
)

func init() {
	color.NoColor = true
}

var sample = &internal.AnalysisResult{
	Analysis: internal.Analysis{
		Clarity:         internal.Criterion{Score: 7, Feedback: "Mostly clear."},
		Specificity:     internal.Criterion{Score: 3, Feedback: "Too vague."},
		Actionability:   internal.Criterion{Score: 9, Feedback: "Direct."},
		Context:         internal.Criterion{Score: 2, Feedback: "No audience."},
		OverallQuality:  5,
		OverallFeedback: "Needs detail.",
	},
	Suggestions: []internal.Suggestion{
		{Title: "Technical", Prompt: "Write for engineers."},
		{Title: "Concise", Prompt: "Write briefly.\nKeep it short."},
	},
}

func TestDisplayAnalysis_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := DisplayAnalysis(&buf, sample, FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got internal.AnalysisResult
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Analysis != sample.Analysis || len(got.Suggestions) != 2 {
		t.Errorf("unexpected decoded output %+v", got)
	}
	if !strings.Contains(buf.String(), `"overall_quality": 5`) {
		t.Error("expected snake_case field names")
	}
}

func TestDisplayAnalysis_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := DisplayAnalysis(&buf, sample, FormatYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got internal.AnalysisResult
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if got.Analysis.Specificity.Feedback != "Too vague." {
		t.Errorf("unexpected decoded output %+v", got)
	}
	if !strings.Contains(buf.String(), "overall_feedback: Needs detail.") {
		t.Error("expected snake_case keys")
	}
}

func TestDisplayAnalysis_Human(t *testing.T) {
	var buf bytes.Buffer
	if err := DisplayAnalysis(&buf, sample, FormatHuman); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Overall quality: █████░░░░░ 5/10",
		"Clarity",
		"Mostly clear.",
		"1. Technical",
		"      Write briefly.\n      Keep it short.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Technical") > strings.Index(out, "Concise") {
		t.Error("expected suggestions in reply order")
	}
}

func TestDisplayCraft(t *testing.T) {
	craft := internal.CraftResult("**Context:** a launch\n")

	var human bytes.Buffer
	DisplayCraft(&human, craft, FormatHuman)
	if human.String() != "**Context:** a launch\n" {
		t.Errorf("expected the prompt alone, got %q", human.String())
	}

	var js bytes.Buffer
	if err := DisplayCraft(&js, craft, FormatJSON); err != nil {
		t.Fatal(err)
	}
	var out craftOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Prompt != string(craft) {
		t.Errorf("expected prompt unmodified, got %q", out.Prompt)
	}
}

func TestScoreBar(t *testing.T) {
	tests := map[int]string{
		0:  "░░░░░░░░░░ 0/10",
		7:  "███████░░░ 7/10",
		10: "██████████ 10/10",
		42: "██████████ 42/10",
		-1: "░░░░░░░░░░ -1/10",
	}
	for score, want := range tests {
		if got := scoreBar(score); got != want {
			t.Errorf("scoreBar(%d) = %q, want %q", score, got, want)
		}
	}
}
