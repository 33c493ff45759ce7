package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 監査ログの絞り込み。nilの項目は条件にしない
type AuditLogFilter struct {
	ActorCustomerID *int64
	Action          *model.AuditAction
	ResourceID      *int64
	Limit           int
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	// 新しい順
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
