package mail

type MailType string

const (
	CommentPublished MailType = "CommentPublished"
)

type CommentPublishedData struct {
	SiteTitle    string
	TutorialName string
	TutorialURL  string
	UserName     string
	Comment      string
}
