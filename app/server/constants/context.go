package constants

const (
	ContextKeySession = "session" // *jwt.User ，没有有效会话时不存在
)
