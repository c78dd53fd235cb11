package domain

type (
	BoardId   = int64
	CommentId = int64
	AlertId   = int64

	Author   = string
	Password = string
	Keyword  = string
)
