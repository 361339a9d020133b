package service

import (
	"sort"

	"github.com/alexanderramin/pulse/internal/domain"
)

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// teamEmployees returns the employees assigned to any of the tasks, by id
// or normalised display name, in employee order.
func teamEmployees(tasks []domain.Task, employees []domain.Employee) []domain.Employee {
	ids := map[string]bool{}
	names := map[string]bool{}
	for i := range tasks {
		t := &tasks[i]
		if t.EmployeeID != "" {
			ids[t.EmployeeID] = true
		}
		if t.ResourceID != "" {
			ids[t.ResourceID] = true
		}
		if t.AssignedResource != "" {
			names[domain.NormalizeName(t.AssignedResource)] = true
		}
	}
	var team []domain.Employee
	for _, e := range employees {
		if ids[e.ID] || names[domain.NormalizeName(e.Name)] {
			team = append(team, e)
		}
	}
	return team
}

// uniqueStrings keeps the first occurrence of each value.
func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
