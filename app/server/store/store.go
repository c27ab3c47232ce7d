// Package store 持有唯一的文档（配置 + 服务列表）。
//
// 写入是“读取-修改-写回”，没有锁也没有事务：两个并发写入在同一部分（config 或
// services）上后完成的一方会覆盖另一方，未涉及的部分不受影响。这是已知的一致性限制，
// 当前没有调用方需要更强的保证。
package store

import (
	"context"
	"errors"
	"start-page/app/server/models"
)

var ErrStore = errors.New("store error")

type Store interface {
	// Read 第一次访问时写入默认文档；无法读取或内容损坏时返回默认文档（不写回）
	Read(ctx context.Context) *models.Document
	// Write 顶层浅合并，失败时返回包装了 ErrStore 的错误
	Write(ctx context.Context, p *models.Partial) (*models.Document, error)
}
