package inits

import (
	"context"
	"fmt"
	"go.uber.org/zap"
	"path/filepath"
	"start-page/app/server/assets"
	"start-page/app/server/config"
	"start-page/app/server/constants"
	"start-page/app/server/store"
)

// Store 配置了数据库时使用 Postgres ，否则使用数据目录下的 JSON 文件
func Store(cfg *config.Config, l *zap.Logger) (store.Store, error) {
	if cfg.System.DBConnectionString == "" {
		path := filepath.Join(cfg.System.DataDir, constants.DocumentFileName)
		l.Info("using file document store", zap.String("path", path))
		return store.NewFile(l, path), nil
	}

	db, err := DB(cfg.System.DBConnectionString)
	if err != nil {
		return nil, err
	}
	l.Info("using postgres document store")

	return store.NewPostgres(l, db), nil
}

// AssetRepository 配置了 S3 时使用对象存储，否则使用数据目录下的 uploads
func AssetRepository(ctx context.Context, cfg *config.Config, l *zap.Logger) (assets.Repository, error) {
	if cfg.Assets.S3Bucket == "" {
		dir := filepath.Join(cfg.System.DataDir, constants.AssetDirName)
		l.Info("using local asset storage", zap.String("dir", dir))
		return assets.NewLocal(dir)
	}

	repo, err := assets.NewS3(ctx, assets.S3Config{
		Bucket:    cfg.Assets.S3Bucket,
		Region:    cfg.Assets.S3Region,
		Endpoint:  cfg.Assets.S3Endpoint,
		AccessKey: cfg.Assets.S3AccessKey,
		SecretKey: cfg.Assets.S3SecretKey,
		Prefix:    cfg.Assets.S3Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize s3 asset storage: %w", err)
	}
	l.Info("using s3 asset storage", zap.String("bucket", cfg.Assets.S3Bucket))

	return repo, nil
}
