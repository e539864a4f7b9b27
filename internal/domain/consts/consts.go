package consts

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityRegister Visibility = "register"
	VisibilityManager  Visibility = "manager"
)

type OutboxStatus int

const (
	NotProcessed OutboxStatus = iota
	Processing
	Processed
	InError
)

type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashDanger  FlashLevel = "danger"
)
