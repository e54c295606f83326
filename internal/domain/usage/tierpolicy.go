package usage

// Unlimited is the quota sentinel meaning a resource is not capped for a tier.
const Unlimited = -1

// FallbackTier is the policy applied when a user's tier has no entry in the
// policy table. Defaulting to the fewest privileges is deliberate: an
// unrecognized tier must never grant unlimited usage.
const FallbackTier = "free"

// Quotas holds the monthly caps for the three metered resources of one tier.
// A value of Unlimited (-1) removes the cap for that resource.
type Quotas struct {
	DatasetsPerMonth   int `yaml:"datasets_per_month"`
	AIMessagesPerMonth int `yaml:"ai_messages_per_month"`
	ReportsPerMonth    int `yaml:"reports_per_month"`
}

// QuotaFor returns the cap for the given resource type.
func (q Quotas) QuotaFor(resource ResourceType) int {
	switch resource {
	case ResourceDataset:
		return q.DatasetsPerMonth
	case ResourceAIMessage:
		return q.AIMessagesPerMonth
	case ResourceReport:
		return q.ReportsPerMonth
	default:
		return 0
	}
}

// PolicyTable maps tier names to their monthly quotas. It is immutable after
// construction and injected into the ledger; changing quotas is a deployment,
// not a data migration.
type PolicyTable struct {
	quotas map[string]Quotas
}

// NewPolicyTable builds an immutable policy table from the given tier quotas.
// The free tier entry is mandatory since it backs the unknown-tier fallback;
// when absent, the built-in free default is used.
func NewPolicyTable(quotas map[string]Quotas) *PolicyTable {
	copied := make(map[string]Quotas, len(quotas))
	for tier, q := range quotas {
		copied[tier] = q
	}
	if _, ok := copied[FallbackTier]; !ok {
		copied[FallbackTier] = DefaultPolicies()[FallbackTier]
	}
	return &PolicyTable{quotas: copied}
}

// DefaultPolicies returns the built-in tier quota table: the free tier is
// capped, every paid tier is unlimited for all three metered resources.
func DefaultPolicies() map[string]Quotas {
	return map[string]Quotas{
		"free": {
			DatasetsPerMonth:   5,
			AIMessagesPerMonth: 50,
			ReportsPerMonth:    3,
		},
		"pro": {
			DatasetsPerMonth:   Unlimited,
			AIMessagesPerMonth: Unlimited,
			ReportsPerMonth:    Unlimited,
		},
		"team": {
			DatasetsPerMonth:   Unlimited,
			AIMessagesPerMonth: Unlimited,
			ReportsPerMonth:    Unlimited,
		},
		"enterprise": {
			DatasetsPerMonth:   Unlimited,
			AIMessagesPerMonth: Unlimited,
			ReportsPerMonth:    Unlimited,
		},
	}
}

// NewDefaultPolicyTable builds a policy table from the built-in defaults.
func NewDefaultPolicyTable() *PolicyTable {
	return NewPolicyTable(DefaultPolicies())
}

// ForTier resolves the quotas for a tier name, falling back to the free tier
// policy for unknown names.
func (p *PolicyTable) ForTier(tier string) Quotas {
	if q, ok := p.quotas[tier]; ok {
		return q
	}
	return p.quotas[FallbackTier]
}

// HasTier reports whether the table has an explicit entry for the tier name.
func (p *PolicyTable) HasTier(tier string) bool {
	_, ok := p.quotas[tier]
	return ok
}
