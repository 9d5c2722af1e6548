package schema

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrorCode categorizes loader errors for clearer handling and messaging.
type ErrorCode string

const (
	InputError      ErrorCode = "InputError"
	ParseError      ErrorCode = "ParseError"
	ConversionError ErrorCode = "ConversionError"
)

// DocError is a structured loader error with the originating location.
type DocError struct {
	Code     ErrorCode
	Message  string
	Location string // file path
	Cause    error
}

func (e *DocError) Error() string { return e.Message }
func (e *DocError) Unwrap() error { return e.Cause }

// Format identifies the shape of an input document.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatRAML    Format = "raml"
	FormatOpenAPI Format = "openapi"
)

// Load reads a schema document from path and returns it as an ordered Value
// mapping. format selects the input shape; FormatAuto sniffs the document
// (an `openapi: 3.x` root key selects the OpenAPI path converter, anything
// else is treated as a RAML-style family document).
func Load(ctx context.Context, path string, format Format) (Value, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Value{}, &DocError{Code: InputError, Message: fmt.Sprintf("resolve path: %v", err), Location: path, Cause: err}
	}

	raw, err := os.ReadFile(abs)
	if err != nil {
		return Value{}, &DocError{Code: InputError, Message: fmt.Sprintf("read file %s: %v", abs, err), Location: abs, Cause: err}
	}

	switch format {
	case "", FormatAuto:
		if isOpenAPI(raw) {
			return LoadOpenAPI(ctx, abs)
		}
		return Parse(raw, abs)
	case FormatRAML:
		return Parse(raw, abs)
	case FormatOpenAPI:
		return LoadOpenAPI(ctx, abs)
	default:
		return Value{}, &DocError{Code: InputError, Message: fmt.Sprintf("schema: unsupported format %q (allowed: auto, raml, openapi)", format), Location: abs}
	}
}

// Parse decodes YAML document bytes into an ordered Value. location is used
// for error reporting only.
func Parse(data []byte, location string) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Value{}, &DocError{Code: ParseError, Message: fmt.Sprintf("parse document: %v", err), Location: location, Cause: err}
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return Value{Kind: Mapping}, nil
		}
		node = node.Content[0]
	}

	v, err := fromNode(node)
	if err != nil {
		return Value{}, &DocError{Code: ParseError, Message: err.Error(), Location: location, Cause: err}
	}
	return v, nil
}

// isOpenAPI reports whether the raw document carries an `openapi: 3.x` root
// key.
func isOpenAPI(data []byte) bool {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return false
	}
	if v, ok := root["openapi"]; ok {
		if s, _ := v.(string); strings.HasPrefix(strings.TrimSpace(s), "3.") {
			return true
		}
	}
	return false
}

func fromNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.MappingNode:
		entries := make([]MapEntry, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			var key string
			if err := keyNode.Decode(&key); err != nil {
				return Value{}, fmt.Errorf("mapping key at line %d: %w", keyNode.Line, err)
			}
			val, err := fromNode(node.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, MapEntry{Key: key, Value: val})
		}
		return Value{Kind: Mapping, Map: entries}, nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := fromNode(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, val)
		}
		return Value{Kind: Sequence, Seq: items}, nil
	case yaml.ScalarNode:
		return fromScalar(node)
	default:
		return Value{}, fmt.Errorf("unexpected node kind %d at line %d", node.Kind, node.Line)
	}
}

func fromScalar(node *yaml.Node) (Value, error) {
	switch node.Tag {
	case "!!null":
		return Value{Kind: Null}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("bool scalar at line %d: %w", node.Line, err)
		}
		return Value{Kind: Bool, BoolV: b}, nil
	case "!!int":
		n, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			// Out-of-range integers degrade to float.
			f, ferr := strconv.ParseFloat(node.Value, 64)
			if ferr != nil {
				return Value{}, fmt.Errorf("int scalar at line %d: %w", node.Line, err)
			}
			return Value{Kind: Float, FloatV: f}, nil
		}
		return Value{Kind: Int, IntV: n}, nil
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			switch strings.TrimPrefix(strings.ToLower(node.Value), "+") {
			case ".inf", "inf":
				f = math.Inf(1)
			case "-.inf", "-inf":
				f = math.Inf(-1)
			case ".nan", "nan":
				f = math.NaN()
			default:
				return Value{}, fmt.Errorf("float scalar at line %d: %w", node.Line, err)
			}
		}
		return Value{Kind: Float, FloatV: f}, nil
	default:
		// Strings and unrecognized tags fall back to the raw scalar text.
		return Value{Kind: String, StrV: node.Value}, nil
	}
}
