package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind discriminates the variants a document value can take.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	Sequence
	Mapping
)

// Value is one node of a parsed schema document: a scalar, a sequence, or an
// ordered mapping. Mappings keep the key order of the source document, which
// flows through to every JSON artifact the splitter writes.
type Value struct {
	Kind   Kind
	BoolV  bool
	IntV   int64
	FloatV float64
	StrV   string
	Seq    []Value
	Map    []MapEntry
}

// MapEntry is one key/value pair of an ordered mapping.
type MapEntry struct {
	Key   string
	Value Value
}

// StringValue returns a string scalar.
func StringValue(s string) Value { return Value{Kind: String, StrV: s} }

// IntValue returns an integer scalar.
func IntValue(n int64) Value { return Value{Kind: Int, IntV: n} }

// BoolValue returns a boolean scalar.
func BoolValue(b bool) Value { return Value{Kind: Bool, BoolV: b} }

// NullValue returns the null scalar.
func NullValue() Value { return Value{Kind: Null} }

// SequenceValue returns a sequence holding the given items.
func SequenceValue(items ...Value) Value { return Value{Kind: Sequence, Seq: items} }

// MappingValue returns an ordered mapping holding the given entries.
func MappingValue(entries ...MapEntry) Value { return Value{Kind: Mapping, Map: entries} }

// IsMapping reports whether the value is a mapping.
func (v Value) IsMapping() bool { return v.Kind == Mapping }

// Get returns the value stored under key in a mapping. The second result is
// false when the value is not a mapping or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != Mapping {
		return Value{}, false
	}
	for _, e := range v.Map {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether a mapping contains key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// StringOr returns the string content of a string scalar, or def for any
// other shape.
func (v Value) StringOr(def string) string {
	if v.Kind == String {
		return v.StrV
	}
	return def
}

// BoolOr returns the boolean content of a bool scalar, or def for any other
// shape.
func (v Value) BoolOr(def bool) bool {
	if v.Kind == Bool {
		return v.BoolV
	}
	return def
}

// GetString returns the string stored under key, or def when the key is
// absent or the value has another shape.
func (v Value) GetString(key, def string) string {
	sub, ok := v.Get(key)
	if !ok {
		return def
	}
	return sub.StringOr(def)
}

// GetMapping returns the mapping stored under key, or an empty mapping when
// the key is absent or the value has another shape.
func (v Value) GetMapping(key string) Value {
	sub, ok := v.Get(key)
	if !ok || sub.Kind != Mapping {
		return Value{Kind: Mapping}
	}
	return sub
}

// Set stores val under key, replacing an existing entry in place or
// appending a new one. It panics when v is not a mapping; callers build
// mappings with MappingValue first.
func (v *Value) Set(key string, val Value) {
	if v.Kind != Mapping {
		panic(fmt.Sprintf("schema: Set on %v value", v.Kind))
	}
	for i := range v.Map {
		if v.Map[i].Key == key {
			v.Map[i].Value = val
			return
		}
	}
	v.Map = append(v.Map, MapEntry{Key: key, Value: val})
}

// MarshalJSON encodes the value with mapping keys in document order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.Kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(v.BoolV))
	case Int:
		buf.WriteString(strconv.FormatInt(v.IntV, 10))
	case Float:
		b, err := json.Marshal(v.FloatV)
		if err != nil {
			return err
		}
		buf.Write(b)
	case String:
		b, err := json.Marshal(v.StrV)
		if err != nil {
			return err
		}
		buf.Write(b)
	case Sequence:
		buf.WriteByte('[')
		for i, item := range v.Seq {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Mapping:
		buf.WriteByte('{')
		for i, e := range v.Map {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(e.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := e.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("schema: unknown value kind %d", v.Kind)
	}
	return nil
}
