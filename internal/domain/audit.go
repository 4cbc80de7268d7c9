package domain

import "time"

// AuditLog records an admin action against a campaign or wallet.
type AuditLog struct {
	ID        int64                  `db:"id" json:"id"`
	Actor     string                 `db:"actor" json:"actor"`
	Action    string                 `db:"action" json:"action"`
	Category  string                 `db:"category" json:"category"`
	Subject   string                 `db:"subject" json:"subject"`
	Details   map[string]interface{} `db:"details" json:"details"`
	IP        string                 `db:"ip" json:"ip,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"createdAt"`
}

// Audit action categories
const (
	AuditCategoryCampaign   = "campaign"
	AuditCategoryWithdrawal = "withdrawal"
)

// Audit actions
const (
	AuditActionCampaignActivate = "campaign_activate"
	AuditActionCampaignSuspend  = "campaign_suspend"
	AuditActionWithdrawApprove  = "withdraw_approve"
	AuditActionWithdrawReject   = "withdraw_reject"
)
