package models

import "strings"

// ClaimType is the coverage a claim is filed under.
type ClaimType string

const (
	ClaimTypeCollision         ClaimType = "Collision"
	ClaimTypeComprehensive     ClaimType = "Comprehensive"
	ClaimTypeLiability         ClaimType = "Liability"
	ClaimTypeUninsuredMotorist ClaimType = "Uninsured Motorist"
	ClaimTypeTheft             ClaimType = "Theft"
	ClaimTypeVandalism         ClaimType = "Vandalism"
	ClaimTypeWeather           ClaimType = "Weather"
)

var knownClaimTypes = []ClaimType{
	ClaimTypeCollision,
	ClaimTypeComprehensive,
	ClaimTypeLiability,
	ClaimTypeUninsuredMotorist,
	ClaimTypeTheft,
	ClaimTypeVandalism,
	ClaimTypeWeather,
}

// ParseClaimType maps user input onto a canonical ClaimType. Matching
// ignores case, spaces, underscores and hyphens, so "uninsured_motorist"
// and "UninsuredMotorist" both resolve. Unknown non-empty values are kept
// as free-form types. An empty value returns false.
func ParseClaimType(s string) (ClaimType, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", false
	}
	key := claimTypeKey(trimmed)
	for _, ct := range knownClaimTypes {
		if claimTypeKey(string(ct)) == key {
			return ct, true
		}
	}
	return ClaimType(trimmed), true
}

// IsKnown reports whether ct is one of the canonical types.
func (ct ClaimType) IsKnown() bool {
	for _, known := range knownClaimTypes {
		if ct == known {
			return true
		}
	}
	return false
}

func claimTypeKey(s string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(r.Replace(s))
}
