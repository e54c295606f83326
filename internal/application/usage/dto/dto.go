package dto

// ResourceUsage is the per-resource slice of a usage stats snapshot.
// Limit carries the raw quota including the -1 unlimited sentinel;
// Unlimited is derived so dashboard clients need no sentinel knowledge.
type ResourceUsage struct {
	Current   int  `json:"current"`
	Limit     int  `json:"limit"`
	Unlimited bool `json:"unlimited"`
}

// UsageStats is the dashboard snapshot for one user and month.
type UsageStats struct {
	Tier       string        `json:"tier"`
	MonthYear  string        `json:"month_year"`
	Datasets   ResourceUsage `json:"datasets"`
	AIMessages ResourceUsage `json:"ai_messages"`
	Reports    ResourceUsage `json:"reports"`
}

// LimitCheck is the outcome of a quota check. Reason is empty when allowed;
// otherwise it is the human-readable denial message shown to the user.
type LimitCheck struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Tier    string `json:"tier"`
	Current int    `json:"current"`
	Limit   int    `json:"limit"`
}
