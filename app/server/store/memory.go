package store

import (
	"context"
	"encoding/json"
	"fmt"
	"start-page/app/server/models"
)

// Memory 保存序列化后的文档，读出的每一份都是独立副本
type Memory struct {
	data []byte
	Err  error // 非空时 Write 失败，用于测试
}

func NewMemory(initial *models.Document) *Memory {
	m := &Memory{}
	if initial != nil {
		m.data, _ = json.Marshal(initial)
	}
	return m
}

func (m *Memory) Read(_ context.Context) *models.Document {
	if m.data == nil {
		doc := models.DefaultDocument()
		m.data, _ = json.Marshal(doc)
		return doc
	}

	var doc models.Document
	if err := json.Unmarshal(m.data, &doc); err != nil {
		return models.DefaultDocument()
	}
	return doc.Normalized()
}

func (m *Memory) Write(ctx context.Context, p *models.Partial) (*models.Document, error) {
	if m.Err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, m.Err)
	}

	next := m.Read(ctx).Apply(p)
	data, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	m.data = data

	return next, nil
}

// Raw 返回当前存储的原始字节
func (m *Memory) Raw() []byte {
	return append([]byte(nil), m.data...)
}
