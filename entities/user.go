package entities

import "time"

const (
	PlanStatusFree    = "free"
	PlanStatusActive  = "active"
	PlanStatusPastDue = "past_due"
	PlanStatusCancel  = "canceled"
)

type User struct {
	UserID           string `gorm:"primaryKey" json:"user_id"`
	Email            string `json:"email"`
	PlanStatus       string `json:"plan_status"` // free|active|past_due|canceled
	StripeCustomerID string `gorm:"index" json:"stripe_customer_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
