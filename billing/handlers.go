package billing

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"
	"gorm.io/gorm"

	"github.com/AraMammo/demodrop-sub000/models"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	// Set Stripe API key from environment
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	return &Handler{DB: db}
}

// priceIDForPlan maps a paid plan tier to its Stripe price.
func priceIDForPlan(plan string) string {
	switch plan {
	case models.PlanPro:
		return os.Getenv("STRIPE_PRICE_PRO")
	case models.PlanEnterprise:
		return os.Getenv("STRIPE_PRICE_ENTERPRISE")
	}
	return ""
}

type CheckoutRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// CreateCheckout starts a Stripe Checkout session for a plan upgrade.
func (h *Handler) CreateCheckout(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priceID := priceIDForPlan(req.Plan)
	if priceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown or free plan %q", req.Plan)})
		return
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	customerID, err := h.ensureStripeCustomer(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Stripe customer"})
		return
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/billing/success?session_id={CHECKOUT_SESSION_ID}", frontendURL)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/billing/cancel", frontendURL)),
	}
	params.AddMetadata("user_id", fmt.Sprintf("%d", user.ID))
	params.AddMetadata("plan", req.Plan)

	session, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}

// CreatePortal opens the Stripe billing portal for subscription
// management.
func (h *Handler) CreatePortal(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No billing account yet. Upgrade a plan first."})
		return
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*user.StripeCustomerID),
		ReturnURL: stripe.String(fmt.Sprintf("%s/dashboard/billing", frontendURL)),
	}

	session, err := portalsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create portal session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}

// GetPlans returns the plan catalog.
func (h *Handler) GetPlans(c *gin.Context) {
	plans := []gin.H{
		{"plan": models.PlanFree, "videos_per_month": models.PlanLimit(models.PlanFree), "price": 0},
		{"plan": models.PlanPro, "videos_per_month": models.PlanLimit(models.PlanPro), "price_id": os.Getenv("STRIPE_PRICE_PRO")},
		{"plan": models.PlanEnterprise, "videos_per_month": models.PlanLimit(models.PlanEnterprise), "price_id": os.Getenv("STRIPE_PRICE_ENTERPRISE")},
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// ensureStripeCustomer returns the user's Stripe customer id, creating
// the customer on first use.
func (h *Handler) ensureStripeCustomer(user *models.User) (string, error) {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return *user.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{}
	if user.Email != "" {
		params.Email = stripe.String(user.Email)
	}
	if user.FullName != "" {
		params.Name = stripe.String(user.FullName)
	}
	params.AddMetadata("user_id", fmt.Sprintf("%d", user.ID))

	cust, err := customer.New(params)
	if err != nil {
		return "", err
	}

	user.StripeCustomerID = &cust.ID
	if err := h.DB.Save(user).Error; err != nil {
		return "", err
	}
	return cust.ID, nil
}
