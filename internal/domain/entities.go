package domain

import "time"

// Canonical shapes served to callers. They are rebuilt from the stored
// document alone and never carry indexed columns.

// State is a workflow state; projects reuse it for their status.
type State struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Ref points at another entity by id, with whatever naming the payload had.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Key  string `json:"key,omitempty"`
}

type Issue struct {
	ID            string    `json:"id"`
	Identifier    string    `json:"identifier"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	Priority      int       `json:"priority"`
	PriorityLabel string    `json:"priorityLabel"`
	URL           string    `json:"url"`
	State         State     `json:"state"`
	Assignee      *User     `json:"assignee,omitempty"`
	Labels        []Label   `json:"labels"`
	Team          *Ref      `json:"team,omitempty"`
	Project       *Ref      `json:"project,omitempty"`
	DueDate       *string   `json:"dueDate,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (i Issue) TeamID() string {
	if i.Team == nil {
		return ""
	}
	return i.Team.ID
}

func (i Issue) ProjectID() string {
	if i.Project == nil {
		return ""
	}
	return i.Project.ID
}

type Comment struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	IssueID   string    `json:"issueId"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Team struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Description *string   `json:"description,omitempty"`
	Color       *string   `json:"color,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	Private     bool      `json:"private"`
	Parent      *Ref      `json:"parent,omitempty"`
	Children    []Ref     `json:"children"`
	Members     []User    `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	URL         string    `json:"url"`
	Icon        *string   `json:"icon,omitempty"`
	Color       *string   `json:"color,omitempty"`
	Status      State     `json:"status"`
	Lead        *User     `json:"lead,omitempty"`
	Progress    float64   `json:"progress"`
	StartDate   *string   `json:"startDate,omitempty"`
	TargetDate  *string   `json:"targetDate,omitempty"`
	Teams       []Ref     `json:"teams"`
	Initiatives []Ref     `json:"initiatives"`
	Members     []User    `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p Project) TeamIDs() []string {
	return refIDs(p.Teams)
}

type Initiative struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	URL         string    `json:"url"`
	Status      string    `json:"status"`
	Owner       *User     `json:"owner,omitempty"`
	TargetDate  *string   `json:"targetDate,omitempty"`
	Teams       []Ref     `json:"teams"`
	Projects    []Ref     `json:"projects"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (i Initiative) TeamIDs() []string {
	return refIDs(i.Teams)
}

func (i Initiative) ProjectIDs() []string {
	return refIDs(i.Projects)
}

func refIDs(refs []Ref) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}
