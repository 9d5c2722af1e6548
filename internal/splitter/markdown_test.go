package splitter

import (
	"strings"
	"testing"
	"time"

	"github.com/ramltools/ramlsplit/internal/schema"
	"github.com/stretchr/testify/require"
)

var testClock = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestRenderDocSections(t *testing.T) {
	t.Parallel()

	doc := schema.MappingValue(
		schema.MapEntry{Key: "description", Value: schema.StringValue("Ethernet interfaces")},
		schema.MapEntry{Key: "endpoints", Value: schema.MappingValue(
			schema.MapEntry{Key: "GET", Value: schema.MappingValue(
				schema.MapEntry{Key: "parameters", Value: schema.MappingValue(
					schema.MapEntry{Key: "name", Value: schema.MappingValue(
						schema.MapEntry{Key: "type", Value: schema.StringValue("interface")},
						schema.MapEntry{Key: "required", Value: schema.BoolValue(true)},
						schema.MapEntry{Key: "description", Value: schema.StringValue("Interface name")},
					)},
					schema.MapEntry{Key: "comment", Value: schema.MappingValue(
						schema.MapEntry{Key: "type", Value: schema.StringValue("string")},
					)},
				)},
				schema.MapEntry{Key: "examples", Value: SynthesizeExample("/ethernet", "GET", schema.MappingValue())},
			)},
		)},
	)

	md, err := RenderDoc("/ethernet", doc, testClock)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(md, "# /ethernet API Documentation\n"))
	require.Contains(t, md, "Generated on: 2026-03-14 09:26:53")
	require.Contains(t, md, "## Description\n\nEthernet interfaces")
	require.Contains(t, md, "## Endpoints")
	require.Contains(t, md, "### GET")
	require.Contains(t, md, "| Name | Type | Required | Description |")
	require.Contains(t, md, "| name | interface | Yes | Interface name |")
	require.Contains(t, md, "| comment | string | No |  |")
	require.Contains(t, md, "#### Examples\n\n```json\n")
	require.NotContains(t, md, "#### Validation Rules")
}

func TestRenderDocOmitsDescriptionWhenAbsent(t *testing.T) {
	t.Parallel()

	doc := schema.MappingValue(
		schema.MapEntry{Key: "endpoints", Value: schema.MappingValue(
			schema.MapEntry{Key: "POST", Value: schema.MappingValue()},
		)},
	)

	md, err := RenderDoc("/vlan", doc, testClock)
	require.NoError(t, err)
	require.NotContains(t, md, "## Description")
	require.Contains(t, md, "### POST")
	require.Contains(t, md, "#### Parameters")
}

func TestRenderDocValidationBlock(t *testing.T) {
	t.Parallel()

	doc := schema.MappingValue(
		schema.MapEntry{Key: "endpoints", Value: schema.MappingValue(
			schema.MapEntry{Key: "GET", Value: schema.MappingValue(
				schema.MapEntry{Key: "validation", Value: schema.MappingValue(
					schema.MapEntry{Key: "address", Value: validationRules["ip"]},
				)},
			)},
		)},
	)

	md, err := RenderDoc("/address", doc, testClock)
	require.NoError(t, err)
	require.Contains(t, md, "#### Validation Rules")
	require.Contains(t, md, "IPv4 address with optional CIDR")
	// The pattern string survives JSON encoding inside the fenced block.
	require.Contains(t, md, `^(\\d{1,3}\\.){3}\\d{1,3}(/\\d{1,2})?$`)
}

func TestRenderDocUppercasesMethods(t *testing.T) {
	t.Parallel()

	doc := schema.MappingValue(
		schema.MapEntry{Key: "endpoints", Value: schema.MappingValue(
			schema.MapEntry{Key: "delete", Value: schema.MappingValue()},
		)},
	)

	md, err := RenderDoc("/x", doc, testClock)
	require.NoError(t, err)
	require.Contains(t, md, "### DELETE")
}
