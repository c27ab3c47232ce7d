package access

import (
	"start-page/app/server/models"
)

type Kind int

const (
	Anonymous Kind = iota // 没有有效会话
	Guest                 // 开启访客访问时的匿名身份，只读
	Member                // 有效会话且用户仍然存在
)

type Identity struct {
	Kind     Kind
	Username string
}

func (i Identity) IsMember() bool {
	return i.Kind == Member
}

// Resolve 依据会话中的用户名和当前文档得出调用者身份。
// 会话有效但用户已被删除时视为没有会话。
func Resolve(doc *models.Document, sessionUser string) Identity {
	if sessionUser != "" {
		if _, u := doc.Config.FindUser(sessionUser); u != nil {
			return Identity{Kind: Member, Username: sessionUser}
		}
	}

	if doc.Config.GuestAccessActive() {
		return Identity{Kind: Guest}
	}

	return Identity{Kind: Anonymous}
}

// IsAdmin 管理员就是用户列表中的第一个
func IsAdmin(doc *models.Document, id Identity) bool {
	return id.IsMember() && doc.Config.Admin() == id.Username
}
