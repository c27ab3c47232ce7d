package models

import (
	"encoding/json"
	"sort"
)

type User struct {
	Username     string  `json:"username"`     // 用户名，区分大小写，全局唯一
	PasswordHash *string `json:"passwordHash"` // 密码哈希， null 表示已创建但尚未设置密码
}

type Config struct {
	// 用户列表，第一个用户即为管理员
	Users []User `json:"users"`

	// 访客访问，只在有用户时生效
	EnableGuestAccess bool `json:"enableGuestAccess"`

	// 外观
	BackgroundImageURL string `json:"backgroundImageUrl"` // 背景图片（通常是 /uploads/ 下的壁纸）
	BackgroundBlur     int    `json:"backgroundBlur"`     // 背景模糊半径（px）
	CardMinWidth       int    `json:"cardMinWidth"`       // 卡片最小宽度（px）

	// 颜色
	CategoryColor       string `json:"categoryColor"`
	CardTitleColor      string `json:"cardTitleColor"`
	CardDescColor       string `json:"cardDescColor"`
	ClockColor          string `json:"clockColor"`
	HeaderTitleColor    string `json:"headerTitleColor"`
	HeaderGreetingColor string `json:"headerGreetingColor"`

	// 分类显示顺序，未列出的分类按字母顺序追加在后面
	CategoryOrder []string `json:"categoryOrder,omitempty"`

	// 其他字段（客户端新增或旧版本遗留的），原样保存
	Extra map[string]json.RawMessage `json:"-"`
}

type ServiceItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
	URLInternal string `json:"urlInternal"`
	URLExternal string `json:"urlExternal,omitempty"`
	Category    string `json:"category"`
}

// Document 是持久化的整体，配置与服务列表作为一个单元存储
type Document struct {
	Config   Config        `json:"config"`
	Services []ServiceItem `json:"services"`
}

// Partial 是一次写入，只替换出现的部分（顶层浅合并）
type Partial struct {
	Config   *Config        `json:"config,omitempty"`
	Services *[]ServiceItem `json:"services,omitempty"`
}

func (p *Partial) IsEmpty() bool {
	return p.Config == nil && p.Services == nil
}

func DefaultDocument() *Document {
	return &Document{
		Config: Config{
			Users:               []User{},
			BackgroundImageURL:  "/default-wallpaper.jpg",
			BackgroundBlur:      16,
			CardMinWidth:        180,
			CategoryColor:       "#ffffff",
			CardTitleColor:      "#ffffff",
			CardDescColor:       "#ffffff",
			ClockColor:          "#ffffff",
			HeaderTitleColor:    "#ffffff",
			HeaderGreetingColor: "#e6e6e6",
		},
		Services: []ServiceItem{},
	}
}

// Apply 在 d 上应用一次写入，返回新的文档，不修改 d
func (d *Document) Apply(p *Partial) *Document {
	next := *d
	if p.Config != nil {
		next.Config = *p.Config
	}
	if p.Services != nil {
		next.Services = *p.Services
	}
	next.normalize()
	return &next
}

func (d *Document) normalize() {
	if d.Config.Users == nil {
		d.Config.Users = []User{}
	}
	if d.Services == nil {
		d.Services = []ServiceItem{}
	}
}

// Normalized 保证列表字段序列化为 [] 而非 null
func (d *Document) Normalized() *Document {
	d.normalize()
	return d
}

func (c *Config) HasUsers() bool {
	return len(c.Users) > 0
}

// GuestAccessActive 访客开关只在至少存在一个用户时生效
func (c *Config) GuestAccessActive() bool {
	return c.EnableGuestAccess && c.HasUsers()
}

func (c *Config) FindUser(username string) (int, *User) {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return i, &c.Users[i]
		}
	}
	return -1, nil
}

// Admin 返回管理员用户名（用户列表的第一个），没有用户时返回空
func (c *Config) Admin() string {
	if len(c.Users) == 0 {
		return ""
	}
	return c.Users[0].Username
}

// Categories 依据 CategoryOrder 排列分类：先是列出且存在的分类，再是其余分类按字母顺序
func Categories(cfg *Config, services []ServiceItem) []string {
	present := make(map[string]bool)
	for _, s := range services {
		present[s.Category] = true
	}

	ordered := []string{}
	placed := make(map[string]bool)
	for _, name := range cfg.CategoryOrder {
		if present[name] && !placed[name] {
			ordered = append(ordered, name)
			placed[name] = true
		}
	}

	var rest []string
	for name := range present {
		if !placed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(ordered, rest...)
}
