// Package parity compares locale dictionaries for identical key structure.
package parity

import (
	"sort"

	"i18nguard/internal/engine/locale"
	"i18nguard/internal/shared/util"
)

// Report lists the dotted keys that differ between a source and a target
// dictionary. Leaf values are never compared.
type Report struct {
	MissingInTarget []string `json:"missing_in_target"`
	ExtraInTarget   []string `json:"extra_in_target"`
	Verified        int      `json:"verified"`
}

func (r Report) OK() bool {
	return len(r.MissingInTarget) == 0 && len(r.ExtraInTarget) == 0
}

// LocaleReport is a Report for one named source/target pair.
type LocaleReport struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	SourcePath string `json:"source_path,omitempty"`
	TargetPath string `json:"target_path,omitempty"`
	Report
}

// FlattenKeys returns one dotted path per leaf of tree, prefixed with prefix
// when it is not empty.
func FlattenKeys(tree *locale.Tree, prefix string) []string {
	keys := make([]string, 0, tree.Len())
	tree.Range(func(key string, value locale.Value) bool {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if sub, ok := value.(*locale.Tree); ok {
			keys = append(keys, FlattenKeys(sub, path)...)
		} else {
			keys = append(keys, path)
		}
		return true
	})
	return keys
}

// Compare diffs the flattened key sets of source and target.
func Compare(source, target *locale.Tree) Report {
	sourceKeys := toSet(FlattenKeys(source, ""))
	targetKeys := toSet(FlattenKeys(target, ""))

	return Report{
		MissingInTarget: difference(sourceKeys, targetKeys),
		ExtraInTarget:   difference(targetKeys, sourceKeys),
		Verified:        len(sourceKeys),
	}
}

// CompareAll compares the source locale against every other locale in
// trees, in sorted target order. Paths, when given, are copied into the
// reports.
func CompareAll(source string, trees map[string]*locale.Tree, paths map[string]string) []LocaleReport {
	reports := make([]LocaleReport, 0, len(trees))
	for _, target := range util.SortedStringKeys(trees) {
		if target == source {
			continue
		}
		reports = append(reports, LocaleReport{
			Source:     source,
			Target:     target,
			SourcePath: paths[source],
			TargetPath: paths[target],
			Report:     Compare(trees[source], trees[target]),
		})
	}
	return reports
}

func toSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func difference(a, b map[string]struct{}) []string {
	out := make([]string, 0)
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
