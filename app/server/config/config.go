package config

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境
		Listen                string // 监听地址
		DataDir               string // 数据目录：文档文件与本地资源都放在这里
		DBConnectionString    string // Postgres 数据库的连接字符串，为空时使用本地文件存储文档
		RedisConnectionString string // Redis 的连接字符串，为空时不缓存
	}
	Security struct {
		SignatureSecretKey string // 签名密钥，用于签发 JWT ，更换会让所有会话失效
		KeyGenerated       bool   // 签名密钥是否为启动时随机生成
	}
	Assets struct {
		S3Bucket    string // 设置后资源存放在对象存储中
		S3Region    string
		S3Endpoint  string // S3 兼容服务（例如 MinIO ）的地址
		S3AccessKey string
		S3SecretKey string
		S3Prefix    string
	}
}
