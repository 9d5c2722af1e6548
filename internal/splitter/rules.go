package splitter

import "github.com/ramltools/ramlsplit/internal/schema"

// validationRules is the fixed table of descriptive validation rules keyed
// by semantic type name. The pattern strings are part of the output
// contract; they are stored in generated artifacts and never evaluated
// against real data here.
var validationRules = map[string]schema.Value{
	"ip": rule(
		"ip",
		`^(\d{1,3}\.){3}\d{1,3}(/\d{1,2})?$`,
		"IPv4 address with optional CIDR",
		"192.168.88.1",
	),
	"mac": rule(
		"mac",
		`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`,
		"MAC address in XX:XX:XX:XX:XX:XX format",
		"00:0C:29:45:67:89",
	),
	"interface": rule(
		"interface",
		`^[a-zA-Z0-9-_]+$`,
		"Interface name",
		"ether1",
	),
}

func rule(typ, pattern, description, example string) schema.Value {
	return schema.MappingValue(
		schema.MapEntry{Key: "type", Value: schema.StringValue(typ)},
		schema.MapEntry{Key: "pattern", Value: schema.StringValue(pattern)},
		schema.MapEntry{Key: "description", Value: schema.StringValue(description)},
		schema.MapEntry{Key: "example", Value: schema.StringValue(example)},
	)
}

// deriveValidation collects the validation rules that apply to an endpoint's
// parameters, keyed by parameter name in declaration order. Parameters whose
// declared type has no rule are omitted.
func deriveValidation(data schema.Value) schema.Value {
	rules := schema.MappingValue()
	parameters := data.GetMapping("parameters")
	for _, entry := range parameters.Map {
		declaredType := entry.Value.GetString("type", "string")
		if r, ok := validationRules[declaredType]; ok {
			rules.Set(entry.Key, r)
		}
	}
	return rules
}
