package models

import (
	"encoding/json"
	"time"
)

// StoredDocument 是 PostgreSQL 中的文档行，只有一行
type StoredDocument struct {
	ID        uint            `gorm:"primaryKey"`
	Config    json.RawMessage `gorm:"column:config;type:jsonb"`   // 整个 config 部分
	Services  json.RawMessage `gorm:"column:services;type:jsonb"` // 整个 services 部分
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (StoredDocument) TableName() string {
	return "documents"
}
