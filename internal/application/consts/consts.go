package consts

const (
	SessionUser          = "user"
	SessionLoggedIn      = "logged_in"
	SessionManager       = "manager"
	SessionTutorialLimit = "tutorial_limit"
	SessionFlash         = "flash"
)

const (
	MsgCommentsDisabled  = "Not available to publish comments."
	MsgAnonymousDisabled = "Not available to publish comments and anonymous users. Please, login in"
	MsgCommentEmpty      = "Add a comment to publish."
	MsgCommentPublished  = "Comment published successfully."
	MsgNewComment        = "New comment published"
)
