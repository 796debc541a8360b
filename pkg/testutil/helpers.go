// Package testutil provides common utility functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bbzsolar/solar-roof-map/internal/dashboard"
)

// FindProject finds a project by ID in the projects slice.
// Returns a pointer to the project if found, nil otherwise.
func FindProject(projects []dashboard.Project, id string) *dashboard.Project {
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i]
		}
	}
	return nil
}

// FindProposal finds a proposal by ID in the proposals slice.
func FindProposal(proposals []dashboard.Proposal, id string) *dashboard.Proposal {
	for i := range proposals {
		if proposals[i].ID == id {
			return &proposals[i]
		}
	}
	return nil
}

// WriteConfig writes contents to a config.yaml in a fresh temporary
// directory and returns its path.
func WriteConfig(t testing.TB, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}
