package models

import "time"

const (
	MembershipBasic   = "basic"
	MembershipPremium = "premium"
	MembershipVIP     = "vip"
)

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	DisplayName      *string   `json:"displayName"`
	MembershipType   string    `json:"membershipType"`
	MembershipExpiry time.Time `json:"membershipExpiry"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func ValidMembershipType(membershipType string) bool {
	switch membershipType {
	case MembershipBasic, MembershipPremium, MembershipVIP:
		return true
	default:
		return false
	}
}
