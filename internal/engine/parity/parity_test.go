package parity

import (
	"fmt"
	"math/rand"
	"testing"

	"i18nguard/internal/engine/locale"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tree(t *testing.T, doc string) *locale.Tree {
	t.Helper()
	tr, err := locale.Parse(locale.FormatJSON, []byte(doc))
	require.NoError(t, err)
	return tr
}

func TestFlattenKeys(t *testing.T) {
	tr := tree(t, `{"a": {"b": "x", "c": {"d": "y"}}, "e": "z", "empty": {}}`)

	assert.ElementsMatch(t, []string{"a.b", "a.c.d", "e"}, FlattenKeys(tr, ""))
	assert.ElementsMatch(t, []string{"root.a.b", "root.a.c.d", "root.e"}, FlattenKeys(tr, "root"))
}

func TestCompare_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		en       string
		de       string
		missing  []string
		extra    []string
		verified int
	}{
		{
			name:     "parity pass",
			en:       `{"a": {"b": "x", "c": "y"}}`,
			de:       `{"a": {"b": "X", "c": "Y"}}`,
			missing:  []string{},
			extra:    []string{},
			verified: 2,
		},
		{
			name:     "missing in target",
			en:       `{"a": {"b": "x", "c": "y"}}`,
			de:       `{"a": {"b": "X"}}`,
			missing:  []string{"a.c"},
			extra:    []string{},
			verified: 2,
		},
		{
			name:     "extra in target",
			en:       `{"a": {"b": "x"}}`,
			de:       `{"a": {"b": "X", "z": "Z"}}`,
			missing:  []string{},
			extra:    []string{"a.z"},
			verified: 1,
		},
		{
			name:     "leaf replaced by subtree",
			en:       `{"a": "x"}`,
			de:       `{"a": {"b": "X"}}`,
			missing:  []string{"a"},
			extra:    []string{"a.b"},
			verified: 1,
		},
		{
			name:     "key order is irrelevant",
			en:       `{"a": "x", "b": "y"}`,
			de:       `{"b": "Y", "a": "X"}`,
			missing:  []string{},
			extra:    []string{},
			verified: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Compare(tree(t, tt.en), tree(t, tt.de))
			assert.Equal(t, tt.missing, report.MissingInTarget)
			assert.Equal(t, tt.extra, report.ExtraInTarget)
			assert.Equal(t, tt.verified, report.Verified)
			assert.Equal(t, len(tt.missing) == 0 && len(tt.extra) == 0, report.OK())
		})
	}
}

func TestCompare_SortsOutput(t *testing.T) {
	report := Compare(tree(t, `{"z": "1", "m": "2", "a": "3"}`), tree(t, `{}`))
	assert.Equal(t, []string{"a", "m", "z"}, report.MissingInTarget)
}

// randomTree builds an acyclic tree with keys drawn from a small alphabet so
// two random trees overlap partially.
func randomTree(r *rand.Rand, depth int) *locale.Tree {
	tr := locale.NewTree()
	n := r.Intn(4) + 1
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("k%d", r.Intn(5))
		if depth > 0 && r.Intn(3) == 0 {
			tr.Set(key, randomTree(r, depth-1))
			continue
		}
		tr.Set(key, locale.Leaf(fmt.Sprintf("v%d", r.Intn(100))))
	}
	return tr
}

func TestProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		a := randomTree(r, 3)
		b := randomTree(r, 3)

		assert.Len(t, FlattenKeys(a, ""), a.LeafCount(), "flatten emits one path per leaf")

		ab := Compare(a, b)
		ba := Compare(b, a)
		assert.Equal(t, ab.MissingInTarget, ba.ExtraInTarget, "symmetry")
		assert.Equal(t, ab.ExtraInTarget, ba.MissingInTarget, "symmetry")

		self := Compare(a, a)
		assert.True(t, self.OK(), "reflexivity")
		assert.Equal(t, a.LeafCount(), self.Verified)
	}
}

func TestCompareAll(t *testing.T) {
	trees := map[string]*locale.Tree{
		"en": tree(t, `{"a": "x", "b": "y"}`),
		"fr": tree(t, `{"a": "x"}`),
		"de": tree(t, `{"a": "X", "b": "Y"}`),
	}
	paths := map[string]string{"en": "en.json", "de": "de.json", "fr": "fr.json"}

	reports := CompareAll("en", trees, paths)
	require.Len(t, reports, 2)

	assert.Equal(t, "de", reports[0].Target)
	assert.True(t, reports[0].OK())
	assert.Equal(t, "de.json", reports[0].TargetPath)

	assert.Equal(t, "fr", reports[1].Target)
	assert.Equal(t, []string{"b"}, reports[1].MissingInTarget)
}
