package events

import "time"

type CommentPublished struct {
	CommentID    int64
	TutorialID   int64
	TutorialName string
	TutorialSlug string
	Lang         string
	UserName     string
	Comment      string
	CreatedAt    time.Time
}

func (e CommentPublished) GetType() string {
	return "CommentPublished"
}
