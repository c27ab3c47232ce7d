// Package assets 把三种来源（上传、远程 URL、图标发现）的图片统一成可列出、可删除的资源。
// 存储本身就是索引：没有目录文件，类型从文件名推断。
package assets

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("asset not found")
	ErrInvalidName     = errors.New("invalid asset filename")
	ErrInvalidType     = errors.New("invalid asset type")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrEmptyFile       = errors.New("empty file")
	ErrTooLarge        = errors.New("file too large")
	ErrInvalidURL      = errors.New("invalid url")
	ErrFetch           = errors.New("remote fetch failed")
	ErrTimeout         = errors.New("remote fetch timed out")
)

type Object struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// Repository 是按文件名寻址的存储，可以是本地磁盘或对象存储
type Repository interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, *Object, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Object, error)
}

// ValidKey 只允许单层、非隐藏的文件名
func ValidKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	if strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return false
	}
	return filepath.Base(key) == key
}
