package model

type IssueColumns struct {
	Identifier   Opt[string]
	Title        Opt[string]
	StateID      Opt[string]
	StateName    Opt[string]
	StateType    Opt[string]
	Priority     Opt[int]
	AssigneeID   Opt[string]
	AssigneeName Opt[string]
	TeamID       Opt[string]
	ProjectID    Opt[string]
	CycleID      Opt[string]
	LabelIDs     Opt[[]string]
	DueDate      Opt[string]
}

func (c IssueColumns) Entity() EntityType { return EntityIssue }

func (c IssueColumns) Overlay(prior Columns) Columns {
	p, ok := prior.(IssueColumns)
	if !ok {
		return c
	}
	return IssueColumns{
		Identifier:   c.Identifier.Or(p.Identifier),
		Title:        c.Title.Or(p.Title),
		StateID:      c.StateID.Or(p.StateID),
		StateName:    c.StateName.Or(p.StateName),
		StateType:    c.StateType.Or(p.StateType),
		Priority:     c.Priority.Or(p.Priority),
		AssigneeID:   c.AssigneeID.Or(p.AssigneeID),
		AssigneeName: c.AssigneeName.Or(p.AssigneeName),
		TeamID:       c.TeamID.Or(p.TeamID),
		ProjectID:    c.ProjectID.Or(p.ProjectID),
		CycleID:      c.CycleID.Or(p.CycleID),
		LabelIDs:     c.LabelIDs.Or(p.LabelIDs),
		DueDate:      c.DueDate.Or(p.DueDate),
	}
}

type CommentColumns struct {
	IssueRef Opt[string]
	UserID   Opt[string]
	UserName Opt[string]
}

func (c CommentColumns) Entity() EntityType { return EntityComment }

func (c CommentColumns) Overlay(prior Columns) Columns {
	p, ok := prior.(CommentColumns)
	if !ok {
		return c
	}
	return CommentColumns{
		IssueRef: c.IssueRef.Or(p.IssueRef),
		UserID:   c.UserID.Or(p.UserID),
		UserName: c.UserName.Or(p.UserName),
	}
}

type ProjectColumns struct {
	Name          Opt[string]
	StatusName    Opt[string]
	LeadID        Opt[string]
	TeamIDs       Opt[[]string]
	InitiativeIDs Opt[[]string]
}

func (c ProjectColumns) Entity() EntityType { return EntityProject }

func (c ProjectColumns) Overlay(prior Columns) Columns {
	p, ok := prior.(ProjectColumns)
	if !ok {
		return c
	}
	return ProjectColumns{
		Name:          c.Name.Or(p.Name),
		StatusName:    c.StatusName.Or(p.StatusName),
		LeadID:        c.LeadID.Or(p.LeadID),
		TeamIDs:       c.TeamIDs.Or(p.TeamIDs),
		InitiativeIDs: c.InitiativeIDs.Or(p.InitiativeIDs),
	}
}

type InitiativeColumns struct {
	Name       Opt[string]
	Status     Opt[string]
	OwnerID    Opt[string]
	TeamIDs    Opt[[]string]
	ProjectIDs Opt[[]string]
}

func (c InitiativeColumns) Entity() EntityType { return EntityInitiative }

func (c InitiativeColumns) Overlay(prior Columns) Columns {
	p, ok := prior.(InitiativeColumns)
	if !ok {
		return c
	}
	return InitiativeColumns{
		Name:       c.Name.Or(p.Name),
		Status:     c.Status.Or(p.Status),
		OwnerID:    c.OwnerID.Or(p.OwnerID),
		TeamIDs:    c.TeamIDs.Or(p.TeamIDs),
		ProjectIDs: c.ProjectIDs.Or(p.ProjectIDs),
	}
}

type TeamColumns struct {
	Key      Opt[string]
	Name     Opt[string]
	ParentID Opt[string]
	Private  Opt[bool]
}

func (c TeamColumns) Entity() EntityType { return EntityTeam }

func (c TeamColumns) Overlay(prior Columns) Columns {
	p, ok := prior.(TeamColumns)
	if !ok {
		return c
	}
	return TeamColumns{
		Key:      c.Key.Or(p.Key),
		Name:     c.Name.Or(p.Name),
		ParentID: c.ParentID.Or(p.ParentID),
		Private:  c.Private.Or(p.Private),
	}
}
