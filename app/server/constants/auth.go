package constants

import "time"

const (
	AuthTokenDuration = 7 * 24 * time.Hour // 会话有效期，签发后固定
	DocumentFileName  = "data.json"        // 本地存储时的文档文件名
)
