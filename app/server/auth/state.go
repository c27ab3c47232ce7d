package auth

import (
	"errors"
	"start-page/app/server/models"
	"unicode/utf8"
)

const MinPasswordLength = 4

var (
	ErrUnknownUser      = errors.New("unknown user")
	ErrUserExists       = errors.New("user already exists")
	ErrInvalidUsername  = errors.New("invalid username")
	ErrSoleUser         = errors.New("cannot remove the only user")
	ErrSelfDelete       = errors.New("cannot remove the signed-in user")
	ErrPasswordTooShort = errors.New("password too short")
	ErrWrongPassword    = errors.New("wrong password")
	ErrNotAdmin         = errors.New("only the administrator can change other users")
)

type State int

const (
	FirstRun     State = iota // 用户列表为空，覆盖普通查找
	Unknown                   // 没有该用户
	PendingSetup              // 已创建但尚未设置密码
	Active                    // 已设置密码
)

func (s State) String() string {
	switch s {
	case FirstRun:
		return "first-run"
	case Unknown:
		return "unknown"
	case PendingSetup:
		return "pending-setup"
	case Active:
		return "active"
	default:
		return "invalid"
	}
}

func StateOf(cfg *models.Config, username string) State {
	if !cfg.HasUsers() {
		return FirstRun
	}

	_, u := cfg.FindUser(username)
	switch {
	case u == nil:
		return Unknown
	case u.PasswordHash == nil:
		return PendingSetup
	default:
		return Active
	}
}

func passwordLongEnough(p string) bool {
	return utf8.RuneCountInString(p) >= MinPasswordLength
}

// AddUser 在列表末尾加入一个待设置密码的用户，不会改变管理员
func AddUser(users []models.User, username string) ([]models.User, error) {
	if username == "" {
		return nil, ErrInvalidUsername
	}
	for _, u := range users {
		if u.Username == username {
			return nil, ErrUserExists
		}
	}

	next := make([]models.User, 0, len(users)+1)
	next = append(next, users...)
	return append(next, models.User{Username: username}), nil
}

// RemoveUser 不能删除唯一的用户，也不能删除正在操作的用户自己。
// 删除第一个用户会让下一个用户成为管理员。
func RemoveUser(users []models.User, target string, actor string) ([]models.User, error) {
	index := -1
	for i, u := range users {
		if u.Username == target {
			index = i
			break
		}
	}

	switch {
	case index < 0:
		return nil, ErrUnknownUser
	case len(users) <= 1:
		return nil, ErrSoleUser
	case target == actor:
		return nil, ErrSelfDelete
	}

	next := make([]models.User, 0, len(users)-1)
	next = append(next, users[:index]...)
	return append(next, users[index+1:]...), nil
}

// CheckUsersReplace 检查整体替换用户列表。
// 管理员适用与删除相同的限制：新列表不能为空，也不能去掉正在操作的用户。
// 其他成员只能修改自己的密码哈希，用户名、顺序和其他人的记录都必须保持不变。
func CheckUsersReplace(prev []models.User, next []models.User, actor string, isAdmin bool) error {
	if len(prev) == 0 {
		return nil
	}

	if !isAdmin {
		if len(next) != len(prev) {
			return ErrNotAdmin
		}
		for i := range prev {
			if next[i].Username != prev[i].Username {
				return ErrNotAdmin
			}
			if next[i].Username != actor && !sameHash(next[i].PasswordHash, prev[i].PasswordHash) {
				return ErrNotAdmin
			}
		}
		return nil
	}

	if len(next) == 0 {
		return ErrSoleUser
	}

	kept := make(map[string]bool, len(next))
	for _, u := range next {
		kept[u.Username] = true
	}
	if actor != "" && !kept[actor] {
		return ErrSelfDelete
	}

	return nil
}

func sameHash(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
