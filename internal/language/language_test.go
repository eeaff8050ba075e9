package language

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "English"},
		{"   ", "English"},
		{"English", "English"},
		{"ukrainian", "Ukrainian"},
		{" German ", "German"},
		{"fr", "French"},
		{"de", "German"},
		{"uk", "Ukrainian"},
		{"cs", "Czech"},
		{"Klingon", "Klingon"},
		{"Old Norse", "Old Norse"},
	}

	for _, tt := range tests {
		if got := Resolve(tt.input); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSupported(t *testing.T) {
	if len(Supported) != 10 {
		t.Fatalf("expected 10 supported languages, got %d", len(Supported))
	}
	for _, opt := range Supported {
		if got := Resolve(opt.Tag.String()); got != opt.Name {
			t.Errorf("tag %s resolves to %q, want %q", opt.Tag, got, opt.Name)
		}
		if !IsSupported(opt.Name) {
			t.Errorf("expected %q to be supported", opt.Name)
		}
	}
	if IsSupported("Klingon") {
		t.Error("expected Klingon to be unsupported")
	}
}
