package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Title        string
	Content      string
	Author       Author
	PasswordHash string
}

type BoardMetadata struct {
	Id        BoardId
	Title     string
	Content   string
	Author    Author
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Board struct {
	BoardMetadata
	PasswordHash string
	IsDeleted    bool
	Comments     []Comment // top-level comments, replies nested
}

// BoardFilter narrows a board listing. Nil fields are not applied.
type BoardFilter struct {
	Id     *BoardId
	Author *string // case-sensitive substring
}

// BoardPatch carries the optional fields of an update.
// Nil or empty fields keep the previous value.
type BoardPatch struct {
	Title   *string
	Content *string
}

// Apply merges the patch onto a copy of the board metadata.
func (p BoardPatch) Apply(b BoardMetadata) BoardMetadata {
	if p.Title != nil && *p.Title != "" {
		b.Title = *p.Title
	}
	if p.Content != nil && *p.Content != "" {
		b.Content = *p.Content
	}
	return b
}
