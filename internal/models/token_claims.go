package models

import "github.com/golang-jwt/jwt/v5"

// Roles carried in bearer tokens.
const (
	RoleClaimant = "claimant"
	RoleReviewer = "reviewer"
	RoleAdmin    = "admin"
)

// Application permissions
const (
	PermissionClaimRead   = "claims:read"
	PermissionClaimWrite  = "claims:write"
	PermissionClaimAssess = "claims:assess"
	PermissionClaimVerify = "claims:verify"
	PermissionClaimReview = "claims:review"
	PermissionStatsRead   = "stats:read"
)

// TokenClaims are the JWT claims issued by the external identity provider.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// Identity returns the caller id, falling back to the token subject.
func (c *TokenClaims) Identity() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// IsReviewer reports whether the caller may make dispositions on any claim.
func (c *TokenClaims) IsReviewer() bool {
	return c.Role == RoleReviewer || c.Role == RoleAdmin
}

// HasPermission checks explicit permissions first, then the role defaults.
func (c *TokenClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	for _, p := range GetDefaultPermissions(c.Role) {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin, RoleReviewer:
		return []string{
			PermissionClaimRead,
			PermissionClaimWrite,
			PermissionClaimAssess,
			PermissionClaimVerify,
			PermissionClaimReview,
			PermissionStatsRead,
		}
	case RoleClaimant:
		return []string{
			PermissionClaimRead,
			PermissionClaimWrite,
			PermissionClaimAssess,
		}
	default:
		return []string{}
	}
}
