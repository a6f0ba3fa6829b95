package embedscript

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"
	"text/template"
)

//go:embed widget.js.tmpl
var scriptTemplate string

// Generator renders the embeddable widget loader script. The script only
// varies by base URL, so it is rendered once and cached.
type Generator struct {
	baseURL string

	once   sync.Once
	script []byte
	err    error
}

// NewGenerator prepares a generator serving scripts that call back to
// baseURL.
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: baseURL}
}

// Script returns the rendered loader script.
func (g *Generator) Script() ([]byte, error) {
	g.once.Do(func() {
		tmpl, err := template.New("widget.js").Parse(scriptTemplate)
		if err != nil {
			g.err = fmt.Errorf("parse widget script template: %w", err)
			return
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, struct{ BaseURL string }{BaseURL: g.baseURL}); err != nil {
			g.err = fmt.Errorf("render widget script: %w", err)
			return
		}
		g.script = buf.Bytes()
	})
	return g.script, g.err
}
