package constants

import "time"

// 资源文件
const (
	AssetURLPrefix     = "/uploads/" // 资源对外访问的路径前缀
	AssetDirName       = "uploads"   // 本地存储时位于数据目录下的子目录
	AssetMaxUploadSize = 10 << 20    // 10 MB
)

// 外部请求
const (
	RemoteFetchTimeout  = 10 * time.Second // 从 URL 导入资源
	IconDiscoverTimeout = 5 * time.Second  // 抓取页面寻找图标
	ProxyTimeout        = 10 * time.Second // 图片代理
	IconDiscoverMaxPage = 2 << 20          // 页面最多读取 2 MB

	// 有些站点会拒绝没有浏览器标识的请求
	BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)
