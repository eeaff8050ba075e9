// Package language resolves the output language handed to the meta-prompts.
//
// The model receives a plain English language name. Users may type either
// that name or a BCP 47 tag such as "uk" or "pt-BR".
package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const Default = "English"

type Option struct {
	Tag  language.Tag
	Name string
}

// Supported is the list offered to users. Any other name is passed through.
var Supported = []Option{
	{language.Czech, "Czech"},
	{language.Dutch, "Dutch"},
	{language.English, "English"},
	{language.French, "French"},
	{language.German, "German"},
	{language.Italian, "Italian"},
	{language.Portuguese, "Portuguese"},
	{language.Russian, "Russian"},
	{language.Spanish, "Spanish"},
	{language.Ukrainian, "Ukrainian"},
}

var namer = display.English.Tags()

// Resolve maps input to the language name used in instruction text.
// Known tags become their English display name, supported names are
// canonicalised, and anything else is returned trimmed.
func Resolve(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return Default
	}

	for _, opt := range Supported {
		if strings.EqualFold(opt.Name, input) {
			return opt.Name
		}
	}

	tag, err := language.Parse(input)
	if err != nil || tag == language.Und {
		return input
	}
	if name := namer.Name(tag); name != "" {
		return name
	}
	return input
}

// IsSupported reports whether name is one of the offered languages.
func IsSupported(name string) bool {
	for _, opt := range Supported {
		if strings.EqualFold(opt.Name, name) {
			return true
		}
	}
	return false
}
