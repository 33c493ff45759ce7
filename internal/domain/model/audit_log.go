package model

import "time"

// 注文確定、プロフィール更新など。
type AuditAction string

const (
	//カートから注文を確定した。
	AuditActionOrderPlaced AuditAction = "ORDER_PLACED"
	//顧客情報を更新した操作。
	AuditActionUpdateCustomer AuditAction = "UPDATE_CUSTOMER"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrder    AuditResourceType = "order"
	AuditResourceCustomer AuditResourceType = "customer"
)

// 監査ログ。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作した顧客のID。
	ActorCustomerID int64 `gorm:"not null;index" json:"actor_customer_id"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	ResourceID int64 `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
