package display

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

var templateFuncs = sprig.TxtFuncMap()

// HintData is what a collect hint template can reference.
type HintData struct {
	Name  string
	Count int
	Total int
}

// ExpandTemplate expands a template string using the provided data.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	if !strings.Contains(tmplStr, "{{") {
		return tmplStr, nil
	}

	tmpl, err := template.New("").Funcs(templateFuncs).Option("missingkey=error").Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// Hint expands a collect hint and wraps it for textSize. An empty template
// yields an empty hint.
func Hint(tmplStr string, data HintData, textSize float64) (string, error) {
	if tmplStr == "" {
		return "", nil
	}
	text, err := ExpandTemplate(tmplStr, data)
	if err != nil {
		return "", err
	}
	return WrapScaled(text, textSize), nil
}
