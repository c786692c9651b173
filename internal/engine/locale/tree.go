// Package locale models one language's dictionary of user-facing strings as
// an ordered tree of translation keys.
package locale

import (
	"fmt"
	"sort"
)

// Value is either a Leaf or a nested *Tree.
type Value interface {
	isValue()
}

// Leaf is a translated string at the end of a key path.
type Leaf string

func (Leaf) isValue() {}

// Entry is one key of a Tree together with its value.
type Entry struct {
	Key   string
	Value Value
}

// Tree is an ordered mapping from keys to leaves or sub-trees. The zero
// value is an empty tree ready to use.
type Tree struct {
	entries []Entry
	index   map[string]int
}

func (*Tree) isValue() {}

func NewTree() *Tree {
	return &Tree{}
}

// Set stores value under key. Re-setting an existing key replaces the value
// in place so the original position is kept.
func (t *Tree) Set(key string, value Value) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if pos, ok := t.index[key]; ok {
		t.entries[pos].Value = value
		return
	}
	t.index[key] = len(t.entries)
	t.entries = append(t.entries, Entry{Key: key, Value: value})
}

func (t *Tree) Get(key string) (Value, bool) {
	if t == nil || t.index == nil {
		return nil, false
	}
	pos, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.entries[pos].Value, true
}

// Subtree returns the nested tree stored under key, creating it when absent.
// A leaf stored under key is replaced.
func (t *Tree) Subtree(key string) *Tree {
	if existing, ok := t.Get(key); ok {
		if sub, ok := existing.(*Tree); ok {
			return sub
		}
	}
	sub := NewTree()
	t.Set(key, sub)
	return sub
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Keys returns the direct keys in insertion order.
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Range calls fn for each direct entry in insertion order until fn returns false.
func (t *Tree) Range(fn func(key string, value Value) bool) {
	if t == nil {
		return
	}
	for _, e := range t.entries {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}

// LeafCount counts leaves at any depth.
func (t *Tree) LeafCount() int {
	count := 0
	t.Range(func(_ string, value Value) bool {
		switch v := value.(type) {
		case *Tree:
			count += v.LeafCount()
		default:
			count++
		}
		return true
	})
	return count
}

// FromMap builds a tree from a generic nested map. Keys are sorted because Go
// maps carry no order. Nested map[string]any values become sub-trees, strings
// become leaves and every other value is rendered with fmt.
func FromMap(m map[string]any) *Tree {
	tree := NewTree()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tree.Set(k, valueOf(m[k]))
	}
	return tree
}

func valueOf(raw any) Value {
	switch v := raw.(type) {
	case map[string]any:
		return FromMap(v)
	case string:
		return Leaf(v)
	case nil:
		return Leaf("")
	default:
		return Leaf(fmt.Sprint(v))
	}
}
