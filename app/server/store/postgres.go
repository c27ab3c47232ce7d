package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"start-page/app/server/models"
)

const documentRowID = 1

// Postgres 把文档存为一行，config 与 services 各占一个 jsonb 列，写入只更新出现的列
type Postgres struct {
	l  *zap.Logger
	db *gorm.DB
}

func NewPostgres(l *zap.Logger, db *gorm.DB) *Postgres {
	return &Postgres{l: l, db: db}
}

func (s *Postgres) Read(ctx context.Context) *models.Document {
	var row models.StoredDocument
	if err := s.db.WithContext(ctx).First(&row, "id = ?", documentRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.initDefault(ctx)
		}

		s.l.Error("failed to read document, using default", zap.Error(err))
		return models.DefaultDocument()
	}

	var doc models.Document
	if err := json.Unmarshal(row.Config, &doc.Config); err != nil {
		s.l.Error("corrupt config section, using default", zap.ByteString("config", row.Config), zap.Error(err))
		return models.DefaultDocument()
	}
	if err := json.Unmarshal(row.Services, &doc.Services); err != nil {
		s.l.Error("corrupt services section, using default", zap.ByteString("services", row.Services), zap.Error(err))
		return models.DefaultDocument()
	}

	return doc.Normalized()
}

func (s *Postgres) initDefault(ctx context.Context) *models.Document {
	doc := models.DefaultDocument()

	row, err := toRow(doc)
	if err != nil {
		s.l.Error("failed to marshal default document", zap.Error(err))
		return doc
	}

	// 并发初始化时已有的行不能被覆盖
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error; err != nil {
		s.l.Error("failed to initialize document", zap.Error(err))
	}

	return doc
}

func (s *Postgres) Write(ctx context.Context, p *models.Partial) (*models.Document, error) {
	next := s.Read(ctx).Apply(p)

	updates := make(map[string]interface{})
	if p.Config != nil {
		configBytes, err := json.Marshal(next.Config)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal config: %w", ErrStore, err)
		}
		updates["config"] = json.RawMessage(configBytes)
	}
	if p.Services != nil {
		servicesBytes, err := json.Marshal(next.Services)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal services: %w", ErrStore, err)
		}
		updates["services"] = json.RawMessage(servicesBytes)
	}
	if len(updates) == 0 {
		return next, nil
	}

	if err := s.db.WithContext(ctx).
		Model(&models.StoredDocument{ID: documentRowID}).
		Updates(updates).Error; err != nil {
		s.l.Error("failed to write document", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	return next, nil
}

func toRow(doc *models.Document) (*models.StoredDocument, error) {
	configBytes, err := json.Marshal(doc.Config)
	if err != nil {
		return nil, err
	}
	servicesBytes, err := json.Marshal(doc.Services)
	if err != nil {
		return nil, err
	}

	return &models.StoredDocument{
		ID:       documentRowID,
		Config:   configBytes,
		Services: servicesBytes,
	}, nil
}
