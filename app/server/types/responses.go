package types

type ErrorMessage struct {
	Message *string `json:"message,omitempty"`
}

type LoginToken struct {
	Token              string `json:"token"`
	Username           string `json:"username"`
	NeedsPasswordSetup bool   `json:"needsPasswordSetup"`
}

// LoginFailure 中的标记只用于界面区分“没有该用户”、“需要设置密码”与“密码错误”
type LoginFailure struct {
	Message            string `json:"message"`
	IsNewUser          bool   `json:"isNewUser"`
	NeedsPasswordSetup bool   `json:"needsPasswordSetup"`
}

type DataUpdateResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type SessionInfo struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	IsAdmin       bool   `json:"isAdmin"`
	IsGuest       bool   `json:"isGuest"`
	HasUsers      bool   `json:"hasUsers"`
}

type UserInfo struct {
	Username     string `json:"username"`
	IsAdmin      bool   `json:"isAdmin"`
	PendingSetup bool   `json:"pendingSetup"`
}

type HealthStatus struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}
