package models

import (
	"time"

	"gorm.io/gorm"
)

// Plan tiers and their monthly video limits.
const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

var planLimits = map[string]int{
	PlanFree:       3,
	PlanPro:        50,
	PlanEnterprise: 500,
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Google OAuth fields
	GoogleID      string `gorm:"uniqueIndex;not null" json:"google_id"`
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	EmailVerified bool   `gorm:"default:false" json:"email_verified"`

	// Profile from Google
	FullName   string `json:"full_name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
	Locale     string `json:"locale"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Plan / quota fields
	Plan       string `gorm:"default:'free'" json:"plan"`
	VideosUsed int    `gorm:"default:0" json:"videos_used"`

	// Stripe/Subscription fields
	StripeCustomerID     *string    `gorm:"uniqueIndex" json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID *string    `gorm:"uniqueIndex" json:"stripe_subscription_id,omitempty"`
	SubscriptionStatus   string     `gorm:"default:free" json:"subscription_status"`
	SubscriptionEndsAt   *time.Time `json:"subscription_ends_at,omitempty"`

	// Timestamps
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// PlanLimit returns the monthly video limit for a plan tier. Unknown tiers
// are treated as free.
func PlanLimit(plan string) int {
	if limit, ok := planLimits[plan]; ok {
		return limit
	}
	return planLimits[PlanFree]
}

// VideoLimit returns the user's monthly video limit, derived from the plan.
func (u *User) VideoLimit() int {
	return PlanLimit(u.Plan)
}

// CanGenerate reports whether the user has quota left for one more video.
func (u *User) CanGenerate() bool {
	return u.VideosUsed < u.VideoLimit()
}

func (u *User) IsSubscribed() bool {
	if u.SubscriptionStatus != "active" && u.SubscriptionStatus != "trial" {
		return false
	}
	if u.SubscriptionEndsAt != nil && u.SubscriptionEndsAt.Before(time.Now()) {
		return false
	}
	return true
}

// GoogleUserInfo is the profile payload returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

// CreateUserFromGoogle creates a new user from Google OAuth data
func CreateUserFromGoogle(info GoogleUserInfo) *User {
	now := time.Now()
	return &User{
		GoogleID:      info.ID,
		Email:         info.Email,
		EmailVerified: info.VerifiedEmail,
		FullName:      info.Name,
		GivenName:     info.GivenName,
		FamilyName:    info.FamilyName,
		Picture:       info.Picture,
		Locale:        info.Locale,
		Plan:          PlanFree,
		LastLoginAt:   &now,
	}
}
