package sqlgen

import (
	"fmt"
	"slices"
	"strings"
)

// SortTables returns table names in dependency order (referenced tables
// before the tables that reference them) using a topological sort on FK
// relationships. Tables with no ordering constraint between them are
// sorted by name. Self references are ignored.
func SortTables(tables map[string]*TableDef) ([]string, error) {
	// Build adjacency: child → referenced tables.
	deps := make(map[string][]string, len(tables))
	for name, td := range tables {
		deps[name] = nil
		for _, ref := range td.References {
			if ref == name {
				continue
			}
			if _, ok := tables[ref]; !ok {
				return nil, fmt.Errorf("table %s references unknown table %s", name, ref)
			}
			if !slices.Contains(deps[name], ref) {
				deps[name] = append(deps[name], ref)
			}
		}
	}

	// Kahn's algorithm.
	inDegree := make(map[string]int, len(tables))
	for name, refs := range deps {
		inDegree[name] = len(refs)
	}

	var queue []string
	for name, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, name)
		}
	}
	slices.Sort(queue)

	result := make([]string, 0, len(tables))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for name, refs := range deps {
			if !slices.Contains(refs, node) {
				continue
			}
			inDegree[name]--
			if inDegree[name] == 0 {
				queue = insertSorted(queue, name)
			}
		}
	}

	if len(result) != len(tables) {
		var cyclic []string
		for name, deg := range inDegree {
			if deg > 0 {
				cyclic = append(cyclic, name)
			}
		}
		slices.Sort(cyclic)
		return nil, fmt.Errorf("foreign key cycle between tables: %s", strings.Join(cyclic, ", "))
	}
	return result, nil
}

// insertSorted inserts s into a sorted slice maintaining sort order.
func insertSorted(sorted []string, s string) []string {
	i, _ := slices.BinarySearch(sorted, s)
	return slices.Insert(sorted, i, s)
}
