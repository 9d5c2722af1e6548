package splitter

import (
	"fmt"
	"strings"

	"github.com/ramltools/ramlsplit/internal/schema"
)

// exampleValues maps semantic keywords to representative literal values.
// Slice order is significant: the first key whose text appears in a
// parameter name wins, so `ip` must stay ahead of `ipv6`.
var exampleValues = []struct {
	Key   string
	Value schema.Value
}{
	{"ip", schema.StringValue("192.168.88.1")},
	{"ipv6", schema.StringValue("2001:db8::1")},
	{"interface", schema.StringValue("ether1")},
	{"mac", schema.StringValue("00:0C:29:45:67:89")},
	{"string", schema.StringValue("example_value")},
	{"number", schema.IntValue(1)},
	{"boolean", schema.BoolValue(true)},
	{"comment", schema.StringValue("Example comment")},
	{"username", schema.StringValue("admin")},
	{"password", schema.StringValue("password123")},
	{"port", schema.IntValue(8080)},
	{"vlan", schema.IntValue(100)},
}

// SynthesizeValue returns a representative example value for one declared
// parameter. Resolution order: keyword substring match against the parameter
// name, exact match against the declared type, then a generic placeholder.
// It always returns a value.
func SynthesizeValue(declaredType, parameterName string) schema.Value {
	lowered := strings.ToLower(parameterName)
	for _, entry := range exampleValues {
		if strings.Contains(lowered, entry.Key) {
			return entry.Value
		}
	}
	for _, entry := range exampleValues {
		if entry.Key == declaredType {
			return entry.Value
		}
	}
	return schema.StringValue("example_value")
}

// SynthesizeExample fabricates a request/response pair for an endpoint from
// its declared parameters. parameters must be a mapping of parameter name to
// a {type, required, description} mapping; other shapes yield an empty
// request body.
func SynthesizeExample(endpointPath, method string, parameters schema.Value) schema.Value {
	body := schema.MappingValue()
	if parameters.IsMapping() {
		for _, entry := range parameters.Map {
			declaredType := entry.Value.GetString("type", "string")
			body.Set(entry.Key, SynthesizeValue(declaredType, entry.Key))
		}
	}

	var responseBody schema.Value
	switch strings.ToLower(method) {
	case "get":
		responseBody = schema.MappingValue(
			schema.MapEntry{Key: "items", Value: schema.SequenceValue(body)},
		)
	case "post":
		responseBody = schema.MappingValue(
			schema.MapEntry{Key: "result", Value: schema.StringValue("success")},
			schema.MapEntry{Key: "ret", Value: schema.StringValue("done")},
		)
	default:
		responseBody = schema.MappingValue(
			schema.MapEntry{Key: "status", Value: schema.StringValue("success")},
		)
	}

	request := schema.MappingValue(
		schema.MapEntry{Key: "method", Value: schema.StringValue(method)},
		schema.MapEntry{Key: "path", Value: schema.StringValue(endpointPath)},
		schema.MapEntry{Key: "body", Value: body},
	)
	response := schema.MappingValue(
		schema.MapEntry{Key: "status", Value: schema.IntValue(200)},
		schema.MapEntry{Key: "body", Value: responseBody},
	)

	return schema.MappingValue(
		schema.MapEntry{Key: "request", Value: request},
		schema.MapEntry{Key: "response", Value: response},
		schema.MapEntry{Key: "description", Value: schema.StringValue(fmt.Sprintf("Example %s request to %s", method, endpointPath))},
	)
}
