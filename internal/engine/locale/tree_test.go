package locale

import "testing"

func TestTree_SetReplacesInPlace(t *testing.T) {
	tree := NewTree()
	tree.Set("a", Leaf("1"))
	tree.Set("b", Leaf("2"))
	tree.Set("a", Leaf("3"))

	keys := tree.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected key order %v", keys)
	}
	v, _ := tree.Get("a")
	if v != Leaf("3") {
		t.Fatalf("expected replaced value, got %v", v)
	}
}

func TestTree_Subtree(t *testing.T) {
	tree := NewTree()
	tree.Subtree("nav").Set("home", Leaf("Home"))
	tree.Subtree("nav").Set("about", Leaf("About"))

	if got := tree.LeafCount(); got != 2 {
		t.Fatalf("expected 2 leaves, got %d", got)
	}
}

func TestFromMap(t *testing.T) {
	tree := FromMap(map[string]any{
		"b": "x",
		"a": map[string]any{"c": "y", "d": 4},
		"e": nil,
	})
	keys := tree.Keys()
	if len(keys) != 3 || keys[0] != "a" {
		t.Fatalf("expected sorted keys, got %v", keys)
	}
	if got := tree.LeafCount(); got != 4 {
		t.Fatalf("expected 4 leaves, got %d", got)
	}
}

func TestNilTreeIsEmpty(t *testing.T) {
	var tree *Tree
	if tree.Len() != 0 || tree.LeafCount() != 0 {
		t.Fatal("expected nil tree to behave as empty")
	}
	if _, ok := tree.Get("a"); ok {
		t.Fatal("expected no value in nil tree")
	}
}
