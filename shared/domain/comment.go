package domain

import (
	"errors"
	"time"
)

// MaxCommentDepth is the deepest a comment may sit: 0 top-level, 1 reply.
const MaxCommentDepth = 1

var ErrReplyDepthExceeded = errors.New("reply depth exceeded")

type CommentCreationData struct {
	BoardId  BoardId
	ParentId *CommentId
	Content  string
	Author   Author
	Depth    int
}

type Comment struct {
	Id        CommentId
	BoardId   BoardId
	ParentId  *CommentId
	Content   string
	Author    Author
	Depth     int
	IsDeleted bool // stored, not filtered on by any read
	CreatedAt time.Time
	Replies   []Comment
}

// ReplyDepth computes the depth of a new comment under parent.
// A nil parent means a top-level comment.
func ReplyDepth(parent *Comment) (int, error) {
	if parent == nil {
		return 0, nil
	}
	if parent.Depth >= MaxCommentDepth {
		return 0, ErrReplyDepthExceeded
	}
	return parent.Depth + 1, nil
}

// BuildCommentTree attaches replies to their top-level parents.
// Both inputs are expected in display order; that order is preserved.
// Replies whose parent is not among topLevel are dropped.
func BuildCommentTree(topLevel []Comment, replies []Comment) []Comment {
	idx := make(map[CommentId]int, len(topLevel))
	tree := make([]Comment, len(topLevel))
	for i, c := range topLevel {
		c.Replies = nil
		tree[i] = c
		idx[c.Id] = i
	}
	for _, r := range replies {
		if r.ParentId == nil {
			continue
		}
		if i, ok := idx[*r.ParentId]; ok {
			tree[i].Replies = append(tree[i].Replies, r)
		}
	}
	return tree
}
