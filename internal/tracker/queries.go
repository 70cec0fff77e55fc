package tracker

import "basegraph.app/hubsync/internal/model"

// connection is the top-level GraphQL field listing one entity type.
var connections = map[model.EntityType]string{
	model.EntityTeam:       "teams",
	model.EntityProject:    "projects",
	model.EntityInitiative: "initiatives",
	model.EntityIssue:      "issues",
	model.EntityComment:    "comments",
}

// Selections request the fields a create webhook would carry, so backfilled
// documents project the same way as pushed ones.
var selections = map[model.EntityType]string{
	model.EntityTeam: `
		id key name displayName description icon color private createdAt updatedAt
		parent { id key name }
		children { nodes { id key name } }
		members { nodes { id name } }`,
	model.EntityProject: `
		id name description icon color url state progress startDate targetDate createdAt updatedAt
		status { id name color type }
		lead { id name }
		teams { nodes { id key name } }
		members { nodes { id name } }
		initiatives { nodes { id name } }`,
	model.EntityInitiative: `
		id name description status targetDate url createdAt updatedAt
		owner { id name }
		projects { nodes { id name } }`,
	model.EntityIssue: `
		id identifier number title description priority priorityLabel url dueDate estimate createdAt updatedAt
		state { id name color type }
		assignee { id name }
		team { id key name }
		project { id name }
		cycle { id number }
		labels { nodes { id name color } }`,
	model.EntityComment: `
		id body url createdAt updatedAt
		issue { id identifier }
		user { id name }`,
}

func pageQuery(connection, selection string) string {
	return `query Page($first: Int!, $after: String) {
	` + connection + `(first: $first, after: $after) {
		nodes {` + selection + `
		}
		pageInfo { hasNextPage endCursor }
	}
}`
}
