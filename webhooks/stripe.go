package webhooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/gorm"

	"github.com/AraMammo/demodrop-sub000/models"
)

// EventLog is the durable dedup store: every Stripe event id is recorded
// before its side effects run, so replays and multi-instance deliveries
// mutate state exactly once.
type EventLog interface {
	// MarkProcessed records the event id. Returns false when the event
	// was already recorded.
	MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error)
}

// GormEventLog backs EventLog with the webhook_events table. The unique
// index on event_id is the real guarantee; the pre-read just keeps the
// common replay path quiet.
type GormEventLog struct {
	db *gorm.DB
}

func NewGormEventLog(db *gorm.DB) *GormEventLog {
	return &GormEventLog{db: db}
}

func (l *GormEventLog) MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	var existing models.WebhookEvent
	err := l.db.WithContext(ctx).Where("event_id = ?", eventID).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	record := models.WebhookEvent{EventID: eventID, EventType: eventType}
	if err := l.db.WithContext(ctx).Create(&record).Error; err != nil {
		// Concurrent delivery won the insert race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type Handler struct {
	DB     *gorm.DB
	Events EventLog

	// apply is swappable so dedup behavior is testable without Stripe.
	apply func(event stripe.Event) error
}

func NewHandler(db *gorm.DB) *Handler {
	h := &Handler{DB: db, Events: NewGormEventLog(db)}
	h.apply = h.applyEvent
	return h
}

// HandleStripeWebhook verifies the signature, dedupes by event id and
// dispatches subscription lifecycle events.
func (h *Handler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	signatureHeader := c.GetHeader("Stripe-Signature")
	webhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	event, err := webhook.ConstructEvent(payload, signatureHeader, webhookSecret)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook signature"})
		return
	}

	if err := h.ProcessEvent(c.Request.Context(), event); err != nil {
		log.Printf("Error processing webhook event %s (%s): %v", event.ID, event.Type, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// ProcessEvent runs the dedup check and applies the event at most once.
func (h *Handler) ProcessEvent(ctx context.Context, event stripe.Event) error {
	fresh, err := h.Events.MarkProcessed(ctx, event.ID, string(event.Type))
	if err != nil {
		return fmt.Errorf("failed to record event %s: %w", event.ID, err)
	}
	if !fresh {
		log.Printf("Skipping already-processed webhook event %s", event.ID)
		return nil
	}
	return h.apply(event)
}

func (h *Handler) applyEvent(event stripe.Event) error {
	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated":
		return h.handleSubscriptionChanged(event)
	case "customer.subscription.deleted":
		return h.handleSubscriptionDeleted(event)
	case "invoice.payment_failed":
		return h.handlePaymentFailed(event)
	default:
		log.Printf("Unhandled event type: %s", event.Type)
		return nil
	}
}

// planForPrice maps a Stripe price back to a plan tier.
func planForPrice(priceID string) string {
	switch priceID {
	case os.Getenv("STRIPE_PRICE_PRO"):
		return models.PlanPro
	case os.Getenv("STRIPE_PRICE_ENTERPRISE"):
		return models.PlanEnterprise
	}
	return models.PlanFree
}

func (h *Handler) handleSubscriptionChanged(event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}
	if sub.Customer == nil {
		return fmt.Errorf("subscription %s has no customer", sub.ID)
	}

	user, err := h.userByCustomer(sub.Customer.ID)
	if err != nil {
		return err
	}

	plan := models.PlanFree
	if len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		plan = planForPrice(sub.Items.Data[0].Price.ID)
	}

	endsAt := time.Unix(sub.CurrentPeriodEnd, 0)
	updates := map[string]interface{}{
		"plan":                   plan,
		"stripe_subscription_id": sub.ID,
		"subscription_status":    string(sub.Status),
		"subscription_ends_at":   &endsAt,
	}
	if err := h.DB.Model(user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update user %d subscription: %w", user.ID, err)
	}

	log.Printf("User %d subscription %s: plan=%s status=%s", user.ID, sub.ID, plan, sub.Status)
	return nil
}

func (h *Handler) handleSubscriptionDeleted(event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}
	if sub.Customer == nil {
		return fmt.Errorf("subscription %s has no customer", sub.ID)
	}

	user, err := h.userByCustomer(sub.Customer.ID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"plan":                   models.PlanFree,
		"stripe_subscription_id": nil,
		"subscription_status":    "canceled",
	}
	if err := h.DB.Model(user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to downgrade user %d: %w", user.ID, err)
	}

	log.Printf("User %d downgraded to free (subscription %s deleted)", user.ID, sub.ID)
	return nil
}

func (h *Handler) handlePaymentFailed(event stripe.Event) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return fmt.Errorf("failed to parse invoice: %w", err)
	}
	if invoice.Customer == nil {
		return fmt.Errorf("invoice %s has no customer", invoice.ID)
	}

	user, err := h.userByCustomer(invoice.Customer.ID)
	if err != nil {
		return err
	}

	if err := h.DB.Model(user).Update("subscription_status", "past_due").Error; err != nil {
		return fmt.Errorf("failed to flag user %d past due: %w", user.ID, err)
	}

	log.Printf("User %d marked past_due after failed payment on invoice %s", user.ID, invoice.ID)
	return nil
}

func (h *Handler) userByCustomer(customerID string) (*models.User, error) {
	var user models.User
	if err := h.DB.Where("stripe_customer_id = ?", customerID).First(&user).Error; err != nil {
		return nil, fmt.Errorf("no user for Stripe customer %s: %w", customerID, err)
	}
	return &user, nil
}
