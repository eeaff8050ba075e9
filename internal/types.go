package internal

import "time"

// Criterion is a single scored aspect of a prompt critique.
type Criterion struct {
	Score    int    `json:"score" yaml:"score"`
	Feedback string `json:"feedback" yaml:"feedback"`
}

type Analysis struct {
	Clarity         Criterion `json:"clarity" yaml:"clarity"`
	Specificity     Criterion `json:"specificity" yaml:"specificity"`
	Actionability   Criterion `json:"actionability" yaml:"actionability"`
	Context         Criterion `json:"context" yaml:"context"`
	OverallQuality  int       `json:"overall_quality" yaml:"overall_quality"`
	OverallFeedback string    `json:"overall_feedback" yaml:"overall_feedback"`
}

type Suggestion struct {
	Title  string `json:"title" yaml:"title"`
	Prompt string `json:"prompt" yaml:"prompt"`
}

// AnalysisResult is the decoded reply of an enhance request. Suggestions are
// kept in the order the model returned them.
type AnalysisResult struct {
	Analysis    Analysis     `json:"analysis" yaml:"analysis"`
	Suggestions []Suggestion `json:"suggestions" yaml:"suggestions"`
}

// CraftResult is the model's literal output for a craft request.
type CraftResult string

// Session is one recorded request/response cycle kept in the history store.
type Session struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Language  string    `json:"language"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	ErrorKind string    `json:"error_kind,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
