package models

import "time"

const (
	ActionApproveRestaurant = "APPROVE_RESTAURANT"
	ActionRejectRestaurant  = "REJECT_RESTAURANT"
	ActionUpdateUserRole    = "UPDATE_USER_ROLE"
	ActionDeleteUser        = "DELETE_USER"
	ActionDeleteRestaurant  = "DELETE_RESTAURANT"
	ActionUpdateOrderStatus = "UPDATE_ORDER_STATUS"
	ActionManageMenuItem    = "MANAGE_MENU_ITEM"
	ActionManageCategory    = "MANAGE_CATEGORY"
)

const (
	TargetUser       = "USER"
	TargetRestaurant = "RESTAURANT"
	TargetOrder      = "ORDER"
	TargetMenuItem   = "MENU_ITEM"
	TargetCategory   = "CATEGORY"
)

// AdminLog rows are append-only.
type AdminLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AdminID    uint      `gorm:"not null;index" json:"admin_id"`
	Admin      *User     `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	TargetType string    `gorm:"type:varchar(20);not null;index:idx_admin_log_target" json:"target_type"`
	TargetID   uint      `gorm:"not null;index:idx_admin_log_target" json:"target_id"`
	Details    string    `gorm:"type:text" json:"details,omitempty"`
	IPAddress  string    `gorm:"type:varchar(64)" json:"ip_address,omitempty"`
	UserAgent  string    `gorm:"type:varchar(255)" json:"user_agent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
