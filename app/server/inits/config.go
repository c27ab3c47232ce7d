package inits

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"start-page/app/server/config"
	"strings"
)

func Config() (*config.Config, error) {
	var cfg config.Config

	// 手动配置映射
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dataDir, exist := os.LookupEnv("DATA_DIR"); !exist {
		cfg.System.DataDir = "./data"
	} else {
		cfg.System.DataDir = dataDir
	}

	cfg.System.DBConnectionString = os.Getenv("DB_CONN")
	cfg.System.RedisConnectionString = os.Getenv("REDIS_CONN")

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist || sigsk == "" {
		// 没有配置时随机生成，重启后旧会话失效
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate signature secret key: %w", err)
		}
		cfg.Security.SignatureSecretKey = hex.EncodeToString(key)
		cfg.Security.KeyGenerated = true
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	cfg.Assets.S3Bucket = os.Getenv("S3_BUCKET")
	if cfg.Assets.S3Bucket != "" {
		if region, exist := os.LookupEnv("S3_REGION"); !exist {
			cfg.Assets.S3Region = "us-east-1"
		} else {
			cfg.Assets.S3Region = region
		}
		cfg.Assets.S3Endpoint = os.Getenv("S3_ENDPOINT")
		cfg.Assets.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
		cfg.Assets.S3SecretKey = os.Getenv("S3_SECRET_KEY")
		cfg.Assets.S3Prefix = os.Getenv("S3_PREFIX")

		if (cfg.Assets.S3AccessKey == "") != (cfg.Assets.S3SecretKey == "") {
			return nil, fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY must be set together")
		}
	}

	return &cfg, nil
}
