package access

import (
	"start-page/app/server/models"
)

// PublicConfig 是未登录时可见的配置子集，足够渲染登录页或访客页
type PublicConfig struct {
	BackgroundImageURL  string `json:"backgroundImageUrl"`
	BackgroundBlur      int    `json:"backgroundBlur"`
	EnableGuestAccess   bool   `json:"enableGuestAccess"`
	CategoryColor       string `json:"categoryColor"`
	CardTitleColor      string `json:"cardTitleColor"`
	CardDescColor       string `json:"cardDescColor"`
	ClockColor          string `json:"clockColor"`
	HeaderTitleColor    string `json:"headerTitleColor"`
	HeaderGreetingColor string `json:"headerGreetingColor"`
	HasUsers            bool   `json:"hasUsers"` // 代替用户列表
}

type PublicDocument struct {
	Config   PublicConfig         `json:"config"`
	Services []models.ServiceItem `json:"services"`
}

// Project 返回调用者可见的文档：成员看到完整文档，其他情况看到脱敏视图
func Project(doc *models.Document, id Identity) interface{} {
	if id.IsMember() {
		return doc.Normalized()
	}
	return Redact(doc)
}

func Redact(doc *models.Document) *PublicDocument {
	cfg := &doc.Config
	return &PublicDocument{
		Config: PublicConfig{
			BackgroundImageURL:  cfg.BackgroundImageURL,
			BackgroundBlur:      cfg.BackgroundBlur,
			EnableGuestAccess:   cfg.EnableGuestAccess,
			CategoryColor:       cfg.CategoryColor,
			CardTitleColor:      cfg.CardTitleColor,
			CardDescColor:       cfg.CardDescColor,
			ClockColor:          cfg.ClockColor,
			HeaderTitleColor:    cfg.HeaderTitleColor,
			HeaderGreetingColor: cfg.HeaderGreetingColor,
			HasUsers:            cfg.HasUsers(),
		},
		Services: []models.ServiceItem{},
	}
}

// Services 返回视图中的服务列表
func Services(doc *models.Document, id Identity) []models.ServiceItem {
	if id.IsMember() {
		return doc.Services
	}
	return []models.ServiceItem{}
}
