package embedscript

import (
	"strings"
	"testing"
)

func TestScriptEmbedsBaseURL(t *testing.T) {
	gen := NewGenerator("https://widgets.example.com")

	script, err := gen.Script()
	if err != nil {
		t.Fatalf("Script() error = %v", err)
	}

	text := string(script)
	if !strings.Contains(text, `const WIDGET_API_BASE = "https://widgets.example.com"`) {
		t.Error("script must embed the configured base URL")
	}
	for _, want := range []string{
		"window.ProductWidgetInitialized",
		"data-ad-client",
		"window.initProductWidgets",
		"/api/widget?client=",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("script is missing %q", want)
		}
	}
}

func TestScriptIsCached(t *testing.T) {
	gen := NewGenerator("http://localhost:8080")

	first, err := gen.Script()
	if err != nil {
		t.Fatal(err)
	}
	second, err := gen.Script()
	if err != nil {
		t.Fatal(err)
	}
	if &first[0] != &second[0] {
		t.Error("Script() must return the cached render")
	}
}
