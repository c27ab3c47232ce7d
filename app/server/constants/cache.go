package constants

import "time"

const (
	CacheKeyIconCandidates = "startpage:icons:%s" // %s -> 规范化后的页面 URL
)

const (
	CacheExpireIconCandidates = 6 * time.Hour
)
