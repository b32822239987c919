// Package billing keeps a user's plan status in sync with Stripe. Only the
// subscription-status webhook transition lives here; the rest of the billing
// lifecycle is Stripe-hosted.
package billing

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
	"gorm.io/gorm"

	"webplanner/entities"
)

type WebhookCtrl struct {
	db     *gorm.DB
	secret string
}

func NewWebhookCtrl(db *gorm.DB, secret string) *WebhookCtrl {
	return &WebhookCtrl{db: db, secret: secret}
}

// POST /billing/webhook
func (h *WebhookCtrl) Handle(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, 1<<20))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable body"})
	}
	event, err := webhook.ConstructEvent(payload, c.Request().Header.Get("Stripe-Signature"), h.secret)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad signature"})
	}

	switch event.Type {
	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad subscription payload"})
		}
		if sub.Customer == nil {
			break
		}
		status := planStatus(sub.Status)
		res := h.db.Model(&entities.User{}).
			Where("stripe_customer_id = ?", sub.Customer.ID).
			Update("plan_status", status)
		if res.Error != nil {
			log.Printf("[billing] plan status update for customer %s failed: %v", sub.Customer.ID, res.Error)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
		}
		if res.RowsAffected == 0 {
			log.Printf("[billing] no user for stripe customer %s", sub.Customer.ID)
		}
	default:
		// other event types are acknowledged and ignored
	}
	return c.JSON(http.StatusOK, map[string]string{"received": "true"})
}

func planStatus(s stripe.SubscriptionStatus) string {
	switch s {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return entities.PlanStatusActive
	case stripe.SubscriptionStatusPastDue:
		return entities.PlanStatusPastDue
	default:
		return entities.PlanStatusCancel
	}
}
