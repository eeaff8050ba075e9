package language

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// Auto asks for the output language to follow the language of the input.
const Auto = "auto"

var detectable = []lingua.Language{
	lingua.Czech,
	lingua.Dutch,
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Russian,
	lingua.Spanish,
	lingua.Ukrainian,
}

// Detector guesses which supported language a text is written in.
type Detector struct {
	detector lingua.LanguageDetector
}

func NewDetector() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(detectable...).
		Build()

	return &Detector{detector: detector}
}

// Detect returns the English name of the language of text.
func (d *Detector) Detect(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return lang.String(), true
}

// IsAuto reports whether setting requests detection.
func IsAuto(setting string) bool {
	return strings.EqualFold(strings.TrimSpace(setting), Auto)
}

// ForInput resolves setting, detecting from text when it is "auto". Text in
// an unrecognised language falls back to Default.
func ForInput(setting, text string, d *Detector) string {
	if !IsAuto(setting) {
		return Resolve(setting)
	}
	if d == nil {
		d = NewDetector()
	}
	if name, ok := d.Detect(text); ok {
		return name
	}
	return Default
}
