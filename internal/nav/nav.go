// Package nav derives the left-navigation links for the active repository.
package nav

import (
	"github.com/danieljhkim/reposel/internal/route"
	"github.com/danieljhkim/reposel/internal/workspace"
)

// Link is one navigation entry.
type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Links returns one link per job of repo, in job order. A nil repo (no active
// selection) renders no links.
func Links(repo *workspace.Repository) []Link {
	if repo == nil {
		return []Link{}
	}

	key := repo.Key()
	links := make([]Link, 0, len(repo.Jobs))
	for _, job := range repo.Jobs {
		links = append(links, Link{
			Label: job,
			Path:  route.JobPath(key, job),
		})
	}
	return links
}
