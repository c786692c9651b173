package locale

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"i18nguard/internal/core/errors"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// SearchExtensions is the order in which LoadDir looks for a locale file.
var SearchExtensions = []string{".json", ".yaml", ".yml", ".toml"}

// FormatForPath maps a file extension to a dictionary format.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	}
	return "", false
}

// LoadFile reads and parses one locale dictionary.
func LoadFile(path string) (*Tree, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, errors.AddContext(
			errors.New(errors.CodeValidationError, "unsupported dictionary format"),
			errors.CtxPath, path,
		)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "dictionary not found"), errors.CtxPath, path)
		}
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeIO, "read dictionary"), errors.CtxPath, path)
	}
	tree, err := Parse(format, data)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	return tree, nil
}

// Parse decodes a dictionary document. The top level must be a mapping.
func Parse(format Format, data []byte) (*Tree, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	case FormatTOML:
		return parseTOML(data)
	}
	return nil, errors.New(errors.CodeValidationError, fmt.Sprintf("unsupported dictionary format %q", format))
}

// ResolveFile finds <dir>/<locale>.<ext> trying SearchExtensions in order.
func ResolveFile(dir, locale string) (string, error) {
	for _, ext := range SearchExtensions {
		candidate := filepath.Join(dir, locale+ext)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", errors.AddContext(errors.Wrap(err, errors.CodeIO, "stat dictionary"), errors.CtxPath, candidate)
		}
	}
	err := errors.New(errors.CodeNotFound, "no dictionary file for locale")
	err = errors.AddContext(err, errors.CtxLocale, locale)
	return "", errors.AddContext(err, errors.CtxPath, dir)
}

// LoadDir loads every requested locale from dir. It returns the trees and
// the resolved file path per locale.
func LoadDir(dir string, locales []string) (map[string]*Tree, map[string]string, error) {
	trees := make(map[string]*Tree, len(locales))
	paths := make(map[string]string, len(locales))
	for _, loc := range locales {
		path, err := ResolveFile(dir, loc)
		if err != nil {
			return nil, nil, err
		}
		tree, err := LoadFile(path)
		if err != nil {
			return nil, nil, errors.AddContext(err, errors.CtxLocale, loc)
		}
		trees[loc] = tree
		paths[loc] = path
	}
	return trees, paths, nil
}

// LocaleFromPath derives the locale name from a dictionary file name,
// e.g. "messages/de.json" -> "de".
func LocaleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func parseJSON(data []byte) (*Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return NewTree(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeParse, "decode json")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New(errors.CodeValidationError, "dictionary root must be an object")
	}
	tree, err := decodeJSONObject(dec)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeParse, "decode json")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.CodeParse, "unexpected data after dictionary root")
	}
	return tree, nil
}

// decodeJSONObject reads members after an already consumed '{'.
func decodeJSONObject(dec *json.Decoder) (*Tree, error) {
	tree := NewTree()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		value, err := decodeJSONValue(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		tree.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return tree, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			parts, err := decodeJSONArray(dec)
			if err != nil {
				return nil, err
			}
			return Leaf(strings.Join(parts, ", ")), nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case string:
		return Leaf(v), nil
	case json.Number:
		return Leaf(v.String()), nil
	case bool:
		return Leaf(strconv.FormatBool(v)), nil
	case nil:
		return Leaf(""), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// decodeJSONArray flattens an array (after '[') into its scalar texts. An
// array is one translation key no matter what it holds.
func decodeJSONArray(dec *json.Decoder) ([]string, error) {
	parts := make([]string, 0)
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '[', '{':
				depth++
			case ']', '}':
				depth--
			}
		case string:
			parts = append(parts, v)
		case json.Number:
			parts = append(parts, v.String())
		case bool:
			parts = append(parts, strconv.FormatBool(v))
		}
	}
	return parts, nil
}

func parseYAML(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.CodeParse, "decode yaml")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewTree(), nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New(errors.CodeValidationError, "dictionary root must be a mapping")
	}
	return decodeYAMLMapping(root), nil
}

func decodeYAMLMapping(node *yaml.Node) *Tree {
	tree := NewTree()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		tree.Set(key, decodeYAMLValue(node.Content[i+1]))
	}
	return tree
}

func decodeYAMLValue(node *yaml.Node) Value {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		return decodeYAMLMapping(node)
	case yaml.SequenceNode:
		parts := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind == yaml.ScalarNode {
				parts = append(parts, item.Value)
			}
		}
		return Leaf(strings.Join(parts, ", "))
	}
	return Leaf(node.Value)
}

func parseTOML(data []byte) (*Tree, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeParse, "decode toml")
	}

	order := make(map[string]int)
	for i, key := range md.Keys() {
		order[strings.Join(key, "\x00")] = i
	}
	return buildTOMLTree(raw, nil, order), nil
}

func buildTOMLTree(raw map[string]any, prefix []string, order map[string]int) *Tree {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	position := func(k string) int {
		path := append(append([]string{}, prefix...), k)
		if pos, ok := order[strings.Join(path, "\x00")]; ok {
			return pos
		}
		return len(order)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		pi, pj := position(keys[i]), position(keys[j])
		if pi != pj {
			return pi < pj
		}
		return keys[i] < keys[j]
	})

	tree := NewTree()
	for _, k := range keys {
		switch v := raw[k].(type) {
		case map[string]any:
			path := append(append([]string{}, prefix...), k)
			tree.Set(k, buildTOMLTree(v, path, order))
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			tree.Set(k, Leaf(strings.Join(parts, ", ")))
		default:
			tree.Set(k, valueOf(v))
		}
	}
	return tree
}
