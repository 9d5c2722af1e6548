package splitter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ramltools/ramlsplit/internal/schema"
)

// docTimeLayout is the wall-clock format stamped into generated documents.
const docTimeLayout = "2006-01-02 15:04:05"

// RenderDoc renders the Markdown document for one endpoint. doc carries an
// optional `description` and an `endpoints` mapping of METHOD to a section
// mapping with optional `parameters`, `examples`, and `validation` entries.
// Pipe characters in table cells are not escaped.
func RenderDoc(endpointPath string, doc schema.Value, now time.Time) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s API Documentation\n\n", endpointPath)
	fmt.Fprintf(&b, "Generated on: %s\n\n", now.Format(docTimeLayout))

	if desc, ok := doc.Get("description"); ok {
		fmt.Fprintf(&b, "## Description\n\n%s\n\n", desc.StringOr(""))
	}

	b.WriteString("## Endpoints\n")

	for _, section := range doc.GetMapping("endpoints").Map {
		fmt.Fprintf(&b, "\n### %s\n", strings.ToUpper(section.Key))
		if err := renderMethodSection(&b, section.Value); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func renderMethodSection(b *strings.Builder, details schema.Value) error {
	b.WriteString("\n#### Parameters\n\n")
	b.WriteString("| Name | Type | Required | Description |\n")
	b.WriteString("|------|------|----------|-------------|\n")
	for _, param := range details.GetMapping("parameters").Map {
		required := "No"
		if r, ok := param.Value.Get("required"); ok && r.BoolOr(false) {
			required = "Yes"
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			param.Key,
			param.Value.GetString("type", ""),
			required,
			param.Value.GetString("description", ""),
		)
	}

	if examples, ok := details.Get("examples"); ok {
		if err := renderJSONBlock(b, "Examples", examples); err != nil {
			return err
		}
	}
	if validation, ok := details.Get("validation"); ok {
		if err := renderJSONBlock(b, "Validation Rules", validation); err != nil {
			return err
		}
	}
	return nil
}

func renderJSONBlock(b *strings.Builder, title string, v schema.Value) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("render %s block: %w", strings.ToLower(title), err)
	}
	fmt.Fprintf(b, "\n#### %s\n\n```json\n%s\n```\n", title, data)
	return nil
}
