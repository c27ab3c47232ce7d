package auth

import (
	"context"
	"fmt"
	"go.uber.org/zap"
	"start-page/app/server/models"
	"start-page/app/server/password"
	"start-page/app/server/store"
)

type Issuer interface {
	Issue(username string) (string, error)
}

// Result 描述一次登录的结果，失败时 Reason 只用于界面文案
type Result struct {
	OK                 bool
	Token              string
	Username           string
	IsNewUser          bool
	NeedsPasswordSetup bool
	Reason             string
}

const (
	ReasonNoSuchUser       = "user not found"
	ReasonPasswordTooShort = "password must be at least 4 characters"
	ReasonWrongPassword    = "invalid username or password"
)

type Machine struct {
	l      *zap.Logger
	st     store.Store
	issuer Issuer
}

func NewMachine(l *zap.Logger, st store.Store, issuer Issuer) *Machine {
	return &Machine{l: l, st: st, issuer: issuer}
}

// Authenticate 依据用户当前所处的状态完成登录、首次引导或首次设置密码。
// 只有存储或签发失败会返回 error ，凭据问题通过 Result 表达。
func (m *Machine) Authenticate(ctx context.Context, username string, plaintext string) (*Result, error) {
	doc := m.st.Read(ctx)
	cfg := doc.Config

	switch StateOf(&cfg, username) {
	case FirstRun:
		if !passwordLongEnough(plaintext) {
			return &Result{Reason: ReasonPasswordTooShort}, nil
		}

		// 第一个用户即为管理员
		hash := password.Hash(plaintext)
		cfg.Users = []models.User{{Username: username, PasswordHash: &hash}}
		if _, err := m.st.Write(ctx, &models.Partial{Config: &cfg}); err != nil {
			return nil, fmt.Errorf("create first user: %w", err)
		}
		m.l.Info("first user created", zap.String("username", username))

		return m.success(username, false)

	case Unknown:
		return &Result{IsNewUser: true, Reason: ReasonNoSuchUser}, nil

	case PendingSetup:
		if !passwordLongEnough(plaintext) {
			return &Result{NeedsPasswordSetup: true, Reason: ReasonPasswordTooShort}, nil
		}

		if err := m.setPassword(ctx, &cfg, username, plaintext); err != nil {
			return nil, err
		}
		m.l.Info("user completed password setup", zap.String("username", username))

		return m.success(username, true)

	default:
		_, u := cfg.FindUser(username)
		if !password.Verify(plaintext, *u.PasswordHash) {
			return &Result{Reason: ReasonWrongPassword}, nil
		}

		return m.success(username, false)
	}
}

func (m *Machine) success(username string, needsPasswordSetup bool) (*Result, error) {
	token, err := m.issuer.Issue(username)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	return &Result{
		OK:                 true,
		Token:              token,
		Username:           username,
		NeedsPasswordSetup: needsPasswordSetup,
	}, nil
}

func (m *Machine) setPassword(ctx context.Context, cfg *models.Config, username string, plaintext string) error {
	i, _ := cfg.FindUser(username)
	if i < 0 {
		return ErrUnknownUser
	}

	users := append([]models.User(nil), cfg.Users...)
	hash := password.Hash(plaintext)
	users[i].PasswordHash = &hash
	cfg.Users = users

	if _, err := m.st.Write(ctx, &models.Partial{Config: cfg}); err != nil {
		return fmt.Errorf("set password: %w", err)
	}

	return nil
}

// Provision 创建一个待设置密码的用户
func (m *Machine) Provision(ctx context.Context, username string) error {
	cfg := m.st.Read(ctx).Config

	users, err := AddUser(cfg.Users, username)
	if err != nil {
		return err
	}
	cfg.Users = users

	if _, err := m.st.Write(ctx, &models.Partial{Config: &cfg}); err != nil {
		return fmt.Errorf("provision user: %w", err)
	}

	return nil
}

// Remove 删除用户，actor 是正在操作的用户
func (m *Machine) Remove(ctx context.Context, actor string, username string) error {
	cfg := m.st.Read(ctx).Config

	users, err := RemoveUser(cfg.Users, username, actor)
	if err != nil {
		return err
	}
	cfg.Users = users

	if _, err := m.st.Write(ctx, &models.Partial{Config: &cfg}); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}

	return nil
}

// ChangePassword 修改自己的密码，需要当前密码（尚未设置密码时不检查）
func (m *Machine) ChangePassword(ctx context.Context, username string, current string, next string) error {
	cfg := m.st.Read(ctx).Config

	_, u := cfg.FindUser(username)
	if u == nil {
		return ErrUnknownUser
	}
	if u.PasswordHash != nil && !password.Verify(current, *u.PasswordHash) {
		return ErrWrongPassword
	}
	if !passwordLongEnough(next) {
		return ErrPasswordTooShort
	}

	return m.setPassword(ctx, &cfg, username, next)
}
