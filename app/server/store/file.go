package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"os"
	"path/filepath"
	"start-page/app/server/models"
)

type File struct {
	l    *zap.Logger
	path string
}

func NewFile(l *zap.Logger, path string) *File {
	return &File{l: l, path: path}
}

func (f *File) Read(_ context.Context) *models.Document {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// 第一次访问，写入默认文档
			doc := models.DefaultDocument()
			if err := f.save(doc); err != nil {
				f.l.Error("failed to initialize document", zap.String("path", f.path), zap.Error(err))
			}
			return doc
		}

		f.l.Error("failed to read document, using default", zap.String("path", f.path), zap.Error(err))
		return models.DefaultDocument()
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		// 内容损坏，不要覆盖原文件
		f.l.Error("corrupt document, using default", zap.String("path", f.path), zap.Error(err))
		return models.DefaultDocument()
	}

	return doc.Normalized()
}

func (f *File) Write(ctx context.Context, p *models.Partial) (*models.Document, error) {
	next := f.Read(ctx).Apply(p)

	if err := f.save(next); err != nil {
		f.l.Error("failed to write document", zap.String("path", f.path), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	return next, nil
}

func (f *File) save(doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// 先写临时文件再改名，避免写到一半留下损坏的文档
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}

	return nil
}
