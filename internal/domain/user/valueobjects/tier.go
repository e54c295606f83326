package valueobjects

import "fmt"

// Tier is the named subscription level determining monthly quotas.
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierTeam       Tier = "team"
	TierEnterprise Tier = "enterprise"
)

// ParseTier validates a raw tier string against the closed set.
func ParseTier(raw string) (Tier, error) {
	switch Tier(raw) {
	case TierFree, TierPro, TierTeam, TierEnterprise:
		return Tier(raw), nil
	default:
		return "", fmt.Errorf("invalid tier: %q", raw)
	}
}

// TierOrFree returns the parsed tier, or TierFree when the raw value is empty
// or unrecognized. Quota enforcement deliberately degrades to the fewest
// privileges instead of rejecting the request.
func TierOrFree(raw string) Tier {
	tier, err := ParseTier(raw)
	if err != nil {
		return TierFree
	}
	return tier
}

func (t Tier) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known tiers.
func (t Tier) IsValid() bool {
	switch t {
	case TierFree, TierPro, TierTeam, TierEnterprise:
		return true
	default:
		return false
	}
}

// IsPaid reports whether t is any tier above free.
func (t Tier) IsPaid() bool {
	return t.IsValid() && t != TierFree
}
