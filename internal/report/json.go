package report

import (
	"encoding/json"
	"fmt"
	"os"
)

func WriteJSONToFile(r *Results, path string) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// MergeJSONFiles keeps the header of the first file and appends the findings,
// targets and notes of the rest.
func MergeJSONFiles(paths []string) (*Results, error) {
	var out Results
	for i, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		var r Results
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if i == 0 {
			out = r
			continue
		}
		out.Findings = append(out.Findings, r.Findings...)
		out.Notes = append(out.Notes, r.Notes...)
		for _, t := range r.Targets {
			if !contains(out.Targets, t) {
				out.Targets = append(out.Targets, t)
			}
		}
	}
	return &out, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
