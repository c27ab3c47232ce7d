package models

type AssetType string

const (
	AssetTypeIcon      AssetType = "icon"
	AssetTypeWallpaper AssetType = "wallpaper"
)

func (t AssetType) Valid() bool {
	return t == AssetTypeIcon || t == AssetTypeWallpaper
}

// Asset 的身份就是文件名，没有额外的索引
type Asset struct {
	ID        string    `json:"id"` // 去掉扩展名的文件名
	Type      AssetType `json:"type"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	CreatedAt int64     `json:"createdAt"` // Unix 毫秒，取自存储的修改时间
}
