package splitter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ramltools/ramlsplit/internal/schema"
)

// Options controls how the splitter renders an output tree.
type Options struct {
	OutDir  string // required; root of the generated tree
	DryRun  bool   // don't write, only plan
	Verbose bool
	Log     io.Writer        // verbose log destination; defaults to os.Stderr
	Now     func() time.Time // clock; defaults to time.Now
}

// PlannedFile describes a file the splitter wrote or intends to write.
type PlannedFile struct {
	RelPath string
	Size    int
}

// Result reports what a run produced.
type Result struct {
	Families  int
	Endpoints int
	Planned   []PlannedFile
}

// Splitter walks a parsed schema document and emits per-endpoint JSON
// descriptors, Markdown documentation, per-family indexes, and a root index.
type Splitter struct {
	opts Options
	now  func() time.Time
	log  io.Writer
}

// New returns a Splitter for the given options.
func New(opts Options) *Splitter {
	s := &Splitter{opts: opts, now: opts.Now, log: opts.Log}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = os.Stderr
	}
	return s
}

// Process splits doc into the output tree. Every top-level mapping key
// starting with `/` is treated as a path family; other keys are metadata
// and ignored. Any failure aborts the run; files already written stay on
// disk.
func (s *Splitter) Process(doc schema.Value) (*Result, error) {
	if strings.TrimSpace(s.opts.OutDir) == "" {
		return nil, fmt.Errorf("splitter: OutDir is required")
	}
	if !doc.IsMapping() {
		return nil, fmt.Errorf("splitter: document root is not a mapping")
	}

	if err := s.ensureLayout(); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, entry := range doc.Map {
		if !strings.HasPrefix(entry.Key, "/") {
			continue
		}
		if !entry.Value.IsMapping() {
			return nil, fmt.Errorf("splitter: family %s: value is not a mapping", entry.Key)
		}
		if err := s.processFamily(entry.Key, entry.Value, res); err != nil {
			return nil, err
		}
		res.Families++
	}

	if err := s.writeRootIndex(res); err != nil {
		return nil, err
	}

	sort.Slice(res.Planned, func(i, j int) bool { return res.Planned[i].RelPath < res.Planned[j].RelPath })
	return res, nil
}

func (s *Splitter) ensureLayout() error {
	if s.opts.DryRun {
		return nil
	}
	for _, dir := range []string{"", "docs", "examples"} {
		if err := os.MkdirAll(filepath.Join(s.opts.OutDir, dir), 0o755); err != nil {
			return fmt.Errorf("create directory structure: %w", err)
		}
	}
	return nil
}

func (s *Splitter) processFamily(family string, endpoints schema.Value, res *Result) error {
	s.logf("split: family %s", family)

	familyDir := strings.Trim(family, "/")
	if !s.opts.DryRun {
		if err := os.MkdirAll(filepath.Join(s.opts.OutDir, familyDir, "docs"), 0o755); err != nil {
			return fmt.Errorf("create family directory %s: %w", familyDir, err)
		}
	}

	collected := schema.SequenceValue()
	for _, entry := range endpoints.Map {
		if !entry.Value.IsMapping() {
			continue
		}
		enriched, err := s.processEndpoint(familyDir, entry.Key, entry.Value, res)
		if err != nil {
			return err
		}
		collected.Seq = append(collected.Seq, enriched)
		res.Endpoints++
	}

	index := schema.MappingValue(
		schema.MapEntry{Key: "family", Value: schema.StringValue(family)},
		schema.MapEntry{Key: "endpoints", Value: collected},
		schema.MapEntry{Key: "examples", Value: schema.SequenceValue()},
	)
	return s.writeJSON(filepath.Join(familyDir, "_index.json"), index, res)
}

func (s *Splitter) processEndpoint(familyDir, endpoint string, data schema.Value, res *Result) (schema.Value, error) {
	s.logf("split: endpoint %s", endpoint)

	method := data.GetString("method", "GET")
	examples := SynthesizeExample(endpoint, method, data.GetMapping("parameters"))
	validation := deriveValidation(data)

	enriched := schema.MappingValue(
		schema.MapEntry{Key: "endpoint", Value: schema.StringValue(endpoint)},
		schema.MapEntry{Key: "data", Value: data},
		schema.MapEntry{Key: "examples", Value: examples},
		schema.MapEntry{Key: "validation", Value: validation},
	)

	// Only the leading and trailing separators are stripped: an embedded
	// slash nests the descriptor under a subdirectory of the family.
	name := strings.Trim(endpoint, "/")
	if err := s.writeJSON(filepath.Join(familyDir, name+".json"), enriched, res); err != nil {
		return schema.Value{}, err
	}

	md, err := RenderDoc(endpoint, s.docView(method, data, examples, validation), s.now())
	if err != nil {
		return schema.Value{}, fmt.Errorf("render docs for %s: %w", endpoint, err)
	}
	if err := s.write(filepath.Join(familyDir, "docs", name+".md"), []byte(md), res); err != nil {
		return schema.Value{}, err
	}

	return enriched, nil
}

// docView assembles the renderer input for one endpoint: its description
// plus a single method section carrying parameters, the synthesized
// examples, and any derived validation rules.
func (s *Splitter) docView(method string, data, examples, validation schema.Value) schema.Value {
	section := schema.MappingValue()
	if parameters, ok := data.Get("parameters"); ok {
		section.Set("parameters", parameters)
	}
	section.Set("examples", examples)
	if len(validation.Map) > 0 {
		section.Set("validation", validation)
	}

	view := schema.MappingValue()
	if desc, ok := data.Get("description"); ok {
		view.Set("description", desc)
	}
	view.Set("endpoints", schema.MappingValue(
		schema.MapEntry{Key: strings.ToUpper(method), Value: section},
	))
	return view
}

// writeRootIndex aggregates every family's _index.json from disk into the
// root index. Reading back from disk rather than reusing in-memory state
// keeps this step independent of the split pass.
func (s *Splitter) writeRootIndex(res *Result) error {
	families := schema.SequenceValue()

	entries, err := os.ReadDir(s.opts.OutDir)
	if err != nil {
		if !os.IsNotExist(err) || !s.opts.DryRun {
			return fmt.Errorf("scan output root: %w", err)
		}
		entries = nil
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		indexPath := filepath.Join(s.opts.OutDir, entry.Name(), "_index.json")
		raw, err := os.ReadFile(indexPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("read family index %s: %w", indexPath, err)
		}
		family, err := schema.Parse(raw, indexPath)
		if err != nil {
			return fmt.Errorf("parse family index %s: %w", indexPath, err)
		}
		families.Seq = append(families.Seq, family)
	}

	index := schema.MappingValue(
		schema.MapEntry{Key: "generated_at", Value: schema.StringValue(s.now().Format(time.RFC3339))},
		schema.MapEntry{Key: "families", Value: families},
	)
	return s.writeJSON("index.json", index, res)
}

func (s *Splitter) writeJSON(rel string, v schema.Value, res *Result) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", rel, err)
	}
	return s.write(rel, append(data, '\n'), res)
}

// write places content at rel under the output root, blindly overwriting.
// The write itself goes through a temp file and rename.
func (s *Splitter) write(rel string, content []byte, res *Result) error {
	res.Planned = append(res.Planned, PlannedFile{RelPath: filepath.ToSlash(rel), Size: len(content)})
	if s.opts.DryRun {
		return nil
	}

	path := filepath.Join(s.opts.OutDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", rel, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("write temp %s: %w", rel, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", rel, err)
	}
	return nil
}

func (s *Splitter) logf(format string, args ...any) {
	if s.opts.Verbose {
		fmt.Fprintf(s.log, format+"\n", args...)
	}
}
