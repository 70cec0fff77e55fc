package dto

import "basegraph.app/hubsync/internal/domain"

type IssuesResponse struct {
	Issues []domain.Issue `json:"issues"`
}

type IssueResponse struct {
	Issue domain.Issue `json:"issue"`
}

type CommentsResponse struct {
	Comments []domain.Comment `json:"comments"`
}

type ProjectsResponse struct {
	Projects []domain.Project `json:"projects"`
}

type InitiativesResponse struct {
	Initiatives []domain.Initiative `json:"initiatives"`
}

type TeamsResponse struct {
	Teams []domain.Team `json:"teams"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
