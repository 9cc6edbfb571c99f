package workspace

// loremFooResponse is the two-location workspace used across tests:
// lorem@ipsum with two jobs and foo@bar with four.
func loremFooResponse() *Response {
	return &Response{
		LocationEntries: []LocationEntry{
			{
				Name: "ipsum",
				LocationOrLoadError: &LocationOrLoadError{
					Typename: TypenameRepositoryLocation,
					Name:     "ipsum",
					Repositories: []RepositoryNode{
						{
							Name: "lorem",
							Pipelines: []PipelineNode{
								{Name: "pipeline_one", IsJob: true},
								{Name: "pipeline_two", IsJob: true},
							},
						},
					},
				},
			},
			{
				Name: "bar",
				LocationOrLoadError: &LocationOrLoadError{
					Typename: TypenameRepositoryLocation,
					Name:     "bar",
					Repositories: []RepositoryNode{
						{
							Name: "foo",
							Pipelines: []PipelineNode{
								{Name: "bar_one", IsJob: true},
								{Name: "bar_two", IsJob: true},
								{Name: "bar_three", IsJob: true},
								{Name: "bar_four", IsJob: true},
							},
						},
					},
				},
			},
		},
	}
}
