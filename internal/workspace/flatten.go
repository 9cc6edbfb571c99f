package workspace

// Flatten derives the known repository set from a workspace response.
//
// Order follows the server: location-major, then repository-minor. A
// (location, repository) pair seen twice keeps its first occurrence. Failed
// or still-loading locations contribute no repositories, and neither do
// unnamed locations or repositories, so every Key is well-formed.
func Flatten(resp *Response) []Repository {
	if resp == nil {
		return nil
	}

	seen := make(map[Key]bool)
	var repos []Repository

	for _, entry := range resp.LocationEntries {
		if !entry.Loaded() {
			continue
		}
		location := entry.Name
		if location == "" {
			location = entry.LocationOrLoadError.Name
		}
		if location == "" {
			continue
		}

		for _, node := range entry.LocationOrLoadError.Repositories {
			if node.Name == "" {
				continue
			}
			repo := Repository{
				Location: location,
				Name:     node.Name,
				Jobs:     make([]string, 0, len(node.Pipelines)),
			}
			if seen[repo.Key()] {
				continue
			}
			seen[repo.Key()] = true

			for _, p := range node.Pipelines {
				repo.Jobs = append(repo.Jobs, p.Name)
			}
			repos = append(repos, repo)
		}
	}

	return repos
}

// Find returns the repository with the given key, or nil.
func Find(repos []Repository, key Key) *Repository {
	for i := range repos {
		if repos[i].Key() == key {
			return &repos[i]
		}
	}
	return nil
}
