package schema

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// LoadOpenAPI reads an OpenAPI v3 document and converts its paths into the
// family/endpoint mapping shape the splitter consumes. The first path
// segment becomes the family key; the remainder of the path becomes the
// endpoint key. A path that carries more than one operation gets one
// endpoint per operation, suffixed with the lowercase method so keys stay
// unique.
func LoadOpenAPI(ctx context.Context, path string) (Value, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return Value{}, &DocError{Code: ParseError, Message: fmt.Sprintf("load openapi document: %v", err), Location: path, Cause: err}
	}
	if err := doc.Validate(ctx); err != nil {
		return Value{}, &DocError{Code: ConversionError, Message: fmt.Sprintf("validate openapi document: %v", err), Location: path, Cause: err}
	}

	return convertOpenAPI(doc), nil
}

func convertOpenAPI(doc *openapi3.T) Value {
	out := MappingValue()
	if doc.Info != nil && doc.Info.Title != "" {
		out.Set("title", StringValue(doc.Info.Title))
	}

	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		item := doc.Paths[p]
		if item == nil {
			continue
		}
		familyKey, rest := splitPath(p)

		family, ok := out.Get(familyKey)
		if !ok || !family.IsMapping() {
			family = MappingValue()
		}

		ops := item.Operations()
		methods := make([]string, 0, len(ops))
		for m := range ops {
			methods = append(methods, m)
		}
		sort.Strings(methods)

		for _, method := range methods {
			op := ops[method]
			endpointKey := rest
			if len(methods) > 1 {
				endpointKey = rest + "/" + strings.ToLower(method)
			}
			family.Set(endpointKey, convertOperation(method, item, op))
		}

		out.Set(familyKey, family)
	}
	return out
}

// splitPath divides an OpenAPI path into the family key (first segment) and
// the endpoint key (remaining segments, or the whole path for single-segment
// paths).
func splitPath(p string) (family, rest string) {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return "/", "/"
	}
	segments := strings.SplitN(trimmed, "/", 2)
	family = "/" + segments[0]
	if len(segments) == 1 {
		return family, family
	}
	return family, "/" + segments[1]
}

func convertOperation(method string, item *openapi3.PathItem, op *openapi3.Operation) Value {
	endpoint := MappingValue()
	endpoint.Set("method", StringValue(method))

	desc := op.Description
	if desc == "" {
		desc = op.Summary
	}
	if desc != "" {
		endpoint.Set("description", StringValue(desc))
	}

	params := MappingValue()
	for _, ref := range append(append([]*openapi3.ParameterRef{}, item.Parameters...), op.Parameters...) {
		if ref == nil || ref.Value == nil || ref.Value.Name == "" {
			continue
		}
		p := ref.Value
		entry := MappingValue()
		entry.Set("type", StringValue(parameterType(p)))
		entry.Set("required", BoolValue(p.Required))
		if p.Description != "" {
			entry.Set("description", StringValue(p.Description))
		}
		params.Set(p.Name, entry)
	}
	if len(params.Map) > 0 {
		endpoint.Set("parameters", params)
	}
	return endpoint
}

func parameterType(p *openapi3.Parameter) string {
	if p.Schema != nil && p.Schema.Value != nil && p.Schema.Value.Type != "" {
		return p.Schema.Value.Type
	}
	return "string"
}
