/*
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package dictwalk

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromAny converts a generic Go value (as produced by encoding/json,
// gopkg.in/yaml.v3, or hand-built maps/slices) into a Value tree. This is
// the "convert-on-ingress" boundary the design calls for when the host's
// native representation is not already a Value.
func FromAny(in any) Value {
	switch v := in.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case bool:
		return Bool(v)
	case string:
		return String(v)
	case int:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Int(i)
		}
		f, _ := v.Float64()
		return Float(f)
	case []any:
		l := NewList()
		for _, item := range v {
			l.Append(FromAny(item))
		}
		return FromList(l)
	case map[string]any:
		m := NewOrderedMap()
		for k, item := range v {
			m.Set(k, FromAny(item))
		}
		return FromMap(m)
	// gopkg.in/yaml.v3 decodes mappings into map[string]any when the target
	// is `any` and keys are strings, but falls back to map[any]any when a
	// document uses non-string keys; normalize both.
	case map[any]any:
		m := NewOrderedMap()
		for k, item := range v {
			m.Set(fmt.Sprint(k), FromAny(item))
		}
		return FromMap(m)
	default:
		return String(fmt.Sprint(v))
	}
}

// ToAny converts a Value tree back into plain Go values (map[string]any,
// []any, and scalars) suitable for encoding/json or gopkg.in/yaml.v3.
func (v Value) ToAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindList:
		out := make([]any, v.list.Len())
		for i, item := range v.list.items {
			out[i] = item.ToAny()
		}
		return out
	case KindMap:
		out := make(map[string]any, v.m.Len())
		for _, k := range v.m.Keys() {
			mv, _ := v.m.Get(k)
			out[k] = mv.ToAny()
		}
		return out
	default:
		return nil
	}
}

// FromJSON parses a JSON document into a Value tree. Objects are walked
// token-by-token (rather than decoded into a native map[string]any, whose
// iteration order the runtime randomizes) so the resulting OrderedMap keeps
// the source document's insertion order, per spec.md's "Maps preserve
// insertion order" invariant.
func FromJSON(data []byte) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	tok, err := decoder.Token()
	if err != nil {
		return Value{}, fmt.Errorf("dictwalk: decoding JSON: %w", err)
	}
	v, err := valueFromJSONToken(tok, decoder)
	if err != nil {
		return Value{}, fmt.Errorf("dictwalk: decoding JSON: %w", err)
	}
	return v, nil
}

// valueFromJSONToken converts tok (already read from decoder) into a Value,
// consuming whatever further tokens an object or array body requires.
func valueFromJSONToken(tok json.Token, decoder *json.Decoder) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewOrderedMap()
			for decoder.More() {
				keyTok, err := decoder.Token()
				if err != nil {
					return Value{}, err
				}
				key, _ := keyTok.(string)
				valTok, err := decoder.Token()
				if err != nil {
					return Value{}, err
				}
				v, err := valueFromJSONToken(valTok, decoder)
				if err != nil {
					return Value{}, err
				}
				m.Set(key, v)
			}
			if _, err := decoder.Token(); err != nil { // consume closing '}'
				return Value{}, err
			}
			return FromMap(m), nil
		case '[':
			l := NewList()
			for decoder.More() {
				valTok, err := decoder.Token()
				if err != nil {
					return Value{}, err
				}
				v, err := valueFromJSONToken(valTok, decoder)
				if err != nil {
					return Value{}, err
				}
				l.Append(v)
			}
			if _, err := decoder.Token(); err != nil { // consume closing ']'
				return Value{}, err
			}
			return FromList(l), nil
		default:
			return Value{}, fmt.Errorf("unexpected JSON delimiter %q", t)
		}
	case nil:
		return Null(), nil
	default:
		return FromAny(t), nil
	}
}

// ToJSON renders a Value tree as JSON.
func ToJSON(v Value) ([]byte, error) {
	return json.Marshal(v.ToAny())
}

// FromYAML parses a YAML document into a Value tree, wiring
// gopkg.in/yaml.v3 as the ingestion boundary for hosts that keep their
// configuration or fixtures in YAML. Decoding into a *yaml.Node (rather
// than directly into `any`, which collapses mappings into map[string]any
// or map[any]any and loses source order the same way FromJSON's decoder
// idiom avoids) keeps a MappingNode's Content in its original key order.
func FromYAML(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("dictwalk: decoding YAML: %w", err)
	}
	v, err := valueFromYAMLNode(&doc)
	if err != nil {
		return Value{}, fmt.Errorf("dictwalk: decoding YAML: %w", err)
	}
	return v, nil
}

// valueFromYAMLNode converts a *yaml.Node into a Value, preserving mapping
// key order from n.Content (alternating key/value nodes).
func valueFromYAMLNode(n *yaml.Node) (Value, error) {
	if n == nil {
		return Null(), nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return valueFromYAMLNode(n.Content[0])
	case yaml.MappingNode:
		m := NewOrderedMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := valueFromYAMLNode(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			m.Set(n.Content[i].Value, v)
		}
		return FromMap(m), nil
	case yaml.SequenceNode:
		l := NewList()
		for _, c := range n.Content {
			v, err := valueFromYAMLNode(c)
			if err != nil {
				return Value{}, err
			}
			l.Append(v)
		}
		return FromList(l), nil
	case yaml.AliasNode:
		return valueFromYAMLNode(n.Alias)
	case yaml.ScalarNode:
		var decoded any
		if err := n.Decode(&decoded); err != nil {
			return Value{}, err
		}
		return FromAny(decoded), nil
	default:
		return Null(), nil
	}
}

// ToYAML renders a Value tree as YAML.
func ToYAML(v Value) ([]byte, error) {
	return yaml.Marshal(v.ToAny())
}
