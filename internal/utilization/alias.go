package utilization

import (
	"fmt"

	"github.com/alexanderramin/pulse/internal/domain"
)

// aliasIndex maps "id:<id>" and "name:<normalised name>" to employee
// positions. A display name shared by several employees maps to all of them.
type aliasIndex map[string][]int

func idKey(id string) string { return "id:" + id }
func nameKey(name string) string { return "name:" + domain.NormalizeName(name) }

func buildAliasIndex(employees []domain.Employee) aliasIndex {
	idx := make(aliasIndex, len(employees)*2)
	for i, emp := range employees {
		if emp.ID != "" {
			idx[idKey(emp.ID)] = append(idx[idKey(emp.ID)], i)
		}
		if domain.NormalizeName(emp.Name) != "" {
			idx[nameKey(emp.Name)] = append(idx[nameKey(emp.Name)], i)
		}
	}
	return idx
}

// match returns the distinct employees any of the given ids or names
// resolve to.
func (a aliasIndex) match(ids []string, names []string) []int {
	var out []int
	seen := map[int]bool{}
	add := func(key string) {
		for _, i := range a[key] {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
	}
	for _, id := range ids {
		if id != "" {
			add(idKey(id))
		}
	}
	for _, n := range names {
		if domain.NormalizeName(n) != "" {
			add(nameKey(n))
		}
	}
	return out
}

// sharedNameWarnings reports employees whose display name resolves to more
// than one employee. Name-matched records count toward each of them.
func (a aliasIndex) sharedNameWarnings(employees []domain.Employee) map[int][]string {
	out := map[int][]string{}
	for i, emp := range employees {
		if domain.NormalizeName(emp.Name) == "" {
			continue
		}
		if n := len(a[nameKey(emp.Name)]); n > 1 {
			out[i] = append(out[i], fmt.Sprintf(
				"display name %q is shared by %d employees; name-matched tasks and hours count toward each",
				domain.NormalizeName(emp.Name), n))
		}
	}
	return out
}
