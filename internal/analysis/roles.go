package analysis

import "strings"

// rolePriorities maps job role phrases to the skills most relevant for that
// role, in priority order. Matching is by substring on the lowercased role,
// so "Senior Backend Developer" hits "backend developer".
var rolePriorities = []struct {
	Role   string
	Skills []string
}{
	{"data science", []string{"python", "sql", "javascript"}},
	{"software engineer", []string{"python", "javascript", "react", "nodejs"}},
	{"web developer", []string{"html", "css", "javascript", "react"}},
	{"backend developer", []string{"python", "nodejs", "sql"}},
	{"frontend developer", []string{"html", "css", "javascript", "react"}},
}

// prioritizeByRole reorders detections so skills relevant to the job role
// come first, keeping detection order within each group. With no matching
// role the input order is returned unchanged.
func prioritizeByRole(detected []Detection, jobRole string) []Detection {
	if jobRole == "" || len(detected) == 0 {
		return detected
	}

	roleLower := strings.ToLower(jobRole)
	for _, rp := range rolePriorities {
		if !strings.Contains(roleLower, rp.Role) {
			continue
		}

		prioritized := make([]Detection, 0, len(detected))
		seen := make(map[string]bool)
		for _, prioritySkill := range rp.Skills {
			for _, d := range detected {
				if d.Key == prioritySkill && !seen[d.Key] {
					prioritized = append(prioritized, d)
					seen[d.Key] = true
				}
			}
		}
		for _, d := range detected {
			if !seen[d.Key] {
				prioritized = append(prioritized, d)
				seen[d.Key] = true
			}
		}
		return prioritized
	}

	return detected
}
