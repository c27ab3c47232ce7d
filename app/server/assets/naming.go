package assets

import (
	"fmt"
	"github.com/google/uuid"
	"mime"
	"path/filepath"
	"regexp"
	"start-page/app/server/models"
	"strings"
	"time"
)

var assetNamePattern = regexp.MustCompile(`^asset-(icon|wallpaper)-`)

// 允许的扩展名与对应的内容类型
var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".ico":  "image/x-icon",
}

var extensions = map[string]string{
	"image/png":                "png",
	"image/jpeg":               "jpg",
	"image/jpg":                "jpg",
	"image/pjpeg":              "jpg",
	"image/gif":                "gif",
	"image/svg+xml":            "svg",
	"image/webp":               "webp",
	"image/x-icon":             "ico",
	"image/vnd.microsoft.icon": "ico",
	"image/ico":                "ico",
}

// NewFilename 形如 asset-<type>-<毫秒时间戳>-<随机数>.<ext>
func NewFilename(t models.AssetType, ext string, now time.Time) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	return fmt.Sprintf("asset-%s-%d-%d.%s", t, now.UnixMilli(), uuid.New().ID()%1_000_000_000, ext)
}

// TypeOf 从文件名推断类型，手动放入的文件默认为图标
func TypeOf(filename string) models.AssetType {
	if m := assetNamePattern.FindStringSubmatch(filename); m != nil {
		return models.AssetType(m[1])
	}
	return models.AssetTypeIcon
}

// ExtensionFor 依据响应声明的内容类型推断扩展名，无法识别时为 png
func ExtensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.ToLower(contentType))
	}

	if ext, ok := extensions[mediaType]; ok {
		return ext
	}
	return "png"
}

// ContentTypeFor 依据扩展名得到内容类型
func ContentTypeFor(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

func supportedExtension(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := contentTypes[ext]; !ok {
		return "", false
	}
	return strings.TrimPrefix(ext, "."), true
}

func toAsset(obj Object, urlPrefix string) models.Asset {
	return models.Asset{
		ID:        strings.TrimSuffix(obj.Key, filepath.Ext(obj.Key)),
		Type:      TypeOf(obj.Key),
		URL:       urlPrefix + obj.Key,
		Filename:  obj.Key,
		CreatedAt: obj.ModTime.UnixMilli(),
	}
}
