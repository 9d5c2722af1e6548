// Package validator checks a generated output tree against the layout
// contract the splitter produces: required directories, index files,
// per-endpoint descriptors, and Markdown documents. It shares no code with
// the splitter; the contract is re-derived here on purpose.
package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// reservedDirs are root subdirectories that belong to the layout itself and
// are not family directories.
var reservedDirs = map[string]bool{
	"docs":     true,
	"examples": true,
}

// Validator accumulates findings over one output tree. Errors are contract
// violations; warnings are non-fatal documentation issues.
type Validator struct {
	root     string
	out      io.Writer
	errors   []string
	warnings []string
}

// New returns a Validator for the tree rooted at root, reporting to out.
func New(root string, out io.Writer) *Validator {
	if out == nil {
		out = os.Stdout
	}
	return &Validator{root: root, out: out}
}

// Errors returns the accumulated error findings.
func (v *Validator) Errors() []string { return v.errors }

// Warnings returns the accumulated warning findings.
func (v *Validator) Warnings() []string { return v.warnings }

// ValidateAll runs every check, prints the report, and returns true iff no
// errors were found. Checks never abort each other: a failure on one file
// becomes a finding and validation continues.
func (v *Validator) ValidateAll() bool {
	v.checkDirectoryStructure()
	v.checkRootIndex()
	v.checkJSONFiles()
	v.checkMarkdownFiles()
	v.checkExamples()
	v.checkReferences()
	v.report()
	return len(v.errors) == 0
}

func (v *Validator) errorf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) checkDirectoryStructure() {
	for _, name := range []string{"docs", "examples"} {
		if !dirExists(filepath.Join(v.root, name)) {
			v.errorf("missing required directory: %s", name)
		}
	}

	entries, err := os.ReadDir(v.root)
	if err != nil {
		v.errorf("read output root %s: %v", v.root, err)
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || reservedDirs[entry.Name()] {
			continue
		}
		if !dirExists(filepath.Join(v.root, entry.Name(), "docs")) {
			v.errorf("missing docs directory in %s", entry.Name())
		}
		if !fileExists(filepath.Join(v.root, entry.Name(), "_index.json")) {
			v.errorf("missing _index.json in %s", entry.Name())
		}
	}
}

func (v *Validator) checkRootIndex() {
	path := filepath.Join(v.root, "index.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		v.errorf("missing main index.json")
		return
	}
	var index map[string]any
	if err := json.Unmarshal(raw, &index); err != nil {
		v.errorf("invalid JSON in %s: %v", path, err)
		return
	}
	if _, ok := index["families"]; !ok {
		v.errorf("missing 'families' in main index.json")
	}
}

func (v *Validator) checkJSONFiles() {
	v.walk("*.json", func(path string) {
		switch {
		case filepath.Base(path) == "_index.json":
			v.checkRequiredFields(path, "family", "endpoints")
		case path == filepath.Join(v.root, "index.json"):
			// Covered by the root index check.
		case filepath.Dir(path) == filepath.Join(v.root, "examples"):
			// Covered by the examples check.
		default:
			v.checkEndpointFile(path)
		}
	})
}

func (v *Validator) checkEndpointFile(path string) {
	data, ok := v.parseJSON(path)
	if !ok {
		return
	}
	for _, field := range []string{"endpoint", "data"} {
		if _, ok := data[field]; !ok {
			v.errorf("missing required field '%s' in %s", field, path)
		}
	}
	if examples, ok := data["examples"]; ok {
		obj, isMap := examples.(map[string]any)
		if !isMap {
			v.errorf("field 'examples' in %s is not an object", path)
			return
		}
		for _, field := range []string{"request", "response"} {
			if _, ok := obj[field]; !ok {
				v.errorf("missing required field '%s' in %s", field, path)
			}
		}
	}
}

func (v *Validator) checkRequiredFields(path string, fields ...string) {
	data, ok := v.parseJSON(path)
	if !ok {
		return
	}
	for _, field := range fields {
		if _, ok := data[field]; !ok {
			v.errorf("missing required field '%s' in %s", field, path)
		}
	}
}

func (v *Validator) checkMarkdownFiles() {
	v.walk("*.md", func(path string) {
		raw, err := os.ReadFile(path)
		if err != nil {
			v.errorf("error reading markdown file %s: %v", path, err)
			return
		}
		content := string(raw)
		for _, section := range []string{"# ", "## Description", "## Endpoints"} {
			if !strings.Contains(content, section) {
				v.warnf("missing section '%s' in %s", section, path)
			}
		}
	})
}

func (v *Validator) checkExamples() {
	matches, err := filepath.Glob(filepath.Join(v.root, "examples", "*.json"))
	if err != nil {
		v.errorf("scan examples directory: %v", err)
		return
	}
	for _, path := range matches {
		data, ok := v.parseJSON(path)
		if !ok {
			continue
		}
		for _, field := range []string{"request", "response"} {
			if _, ok := data[field]; !ok {
				v.errorf("missing required field '%s' in example %s", field, path)
			}
		}
	}
}

func (v *Validator) checkReferences() {
	raw, err := os.ReadFile(filepath.Join(v.root, "index.json"))
	if err != nil {
		v.errorf("error validating cross-references: %v", err)
		return
	}
	var index struct {
		Families []any `json:"families"`
	}
	if err := json.Unmarshal(raw, &index); err != nil {
		v.errorf("error validating cross-references: %v", err)
		return
	}
	for _, entry := range index.Families {
		name := familyName(entry)
		if name == "" {
			v.errorf("root index families entry has no usable family name: %v", entry)
			continue
		}
		if !dirExists(filepath.Join(v.root, strings.Trim(name, "/"))) {
			v.errorf("referenced family directory does not exist: %s", name)
		}
	}
}

// familyName extracts the directory-identifying value from one root-index
// families entry: the `family` field of an index object, or the entry
// itself when it is a bare string.
func familyName(entry any) string {
	switch e := entry.(type) {
	case string:
		return e
	case map[string]any:
		if s, ok := e["family"].(string); ok {
			return s
		}
	}
	return ""
}

func (v *Validator) parseJSON(path string) (map[string]any, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		v.errorf("error processing %s: %v", path, err)
		return nil, false
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		v.errorf("invalid JSON in %s: %v", path, err)
		return nil, false
	}
	return data, true
}

// walk visits every file under the root matching pattern, in lexical order.
func (v *Validator) walk(pattern string, visit func(path string)) {
	err := filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			v.errorf("error walking %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			visit(path)
		}
		return nil
	})
	if err != nil {
		v.errorf("error walking %s: %v", v.root, err)
	}
}

func (v *Validator) report() {
	fmt.Fprintln(v.out, "=== Validation Results ===")

	if len(v.errors) > 0 {
		fmt.Fprintln(v.out, "\nErrors:")
		for _, e := range v.errors {
			fmt.Fprintf(v.out, "  - %s\n", e)
		}
	}
	if len(v.warnings) > 0 {
		fmt.Fprintln(v.out, "\nWarnings:")
		for _, w := range v.warnings {
			fmt.Fprintf(v.out, "  - %s\n", w)
		}
	}
	if len(v.errors) == 0 && len(v.warnings) == 0 {
		fmt.Fprintln(v.out, "\nAll validations passed successfully!")
	}

	fmt.Fprintf(v.out, "\nTotal: %d errors, %d warnings\n", len(v.errors), len(v.warnings))
}

func dirExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}
