package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"net/http"
	"start-page/app/server/assets"
	"start-page/app/server/constants"
)

// FetchIconCandidates 从不失败，网络或解析问题放在 errors 里返回
func (a *App) FetchIconCandidates(c echo.Context) error {
	rawURL := c.QueryParam("url")
	if rawURL == "" {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	page, err := assets.NormalizePageURL(rawURL)
	if err != nil {
		return c.JSON(http.StatusOK, &assets.Candidates{
			Icons:  []string{},
			Errors: []string{err.Error()},
		})
	}
	cacheKey := fmt.Sprintf(constants.CacheKeyIconCandidates, page.String())

	// 查询缓存
	if cached := a.cachedCandidates(rctx, cacheKey); cached != nil {
		return c.JSON(http.StatusOK, cached)
	}

	res := a.assets.Discover(rctx, page.String())

	// 只缓存完整的结果
	if a.rdb != nil && len(res.Errors) == 0 {
		if cacheBytes, err := json.Marshal(res); err != nil {
			a.l.Error("failed to marshal icon candidates", zap.Error(err))
		} else if err := a.rdb.Set(rctx, cacheKey, cacheBytes, constants.CacheExpireIconCandidates).Err(); err != nil {
			a.l.Error("failed to cache icon candidates", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, res)
}

func (a *App) cachedCandidates(ctx context.Context, cacheKey string) *assets.Candidates {
	if a.rdb == nil {
		return nil
	}

	cacheBytes, err := a.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			a.l.Error("failed to query cache for icon candidates", zap.String("key", cacheKey), zap.Error(err))
		}
		return nil
	}

	var res assets.Candidates
	if err := json.Unmarshal(cacheBytes, &res); err != nil {
		a.l.Error("failed to unmarshal icon candidates", zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		// 可能是无效的缓存，清理掉
		a.rdb.Del(ctx, cacheKey)
		return nil
	}

	return &res
}
