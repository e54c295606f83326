package usage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicies(t *testing.T) {
	table := NewDefaultPolicyTable()

	free := table.ForTier("free")
	assert.Equal(t, 5, free.DatasetsPerMonth)
	assert.Equal(t, 50, free.AIMessagesPerMonth)
	assert.Equal(t, 3, free.ReportsPerMonth)

	for _, tier := range []string{"pro", "team", "enterprise"} {
		q := table.ForTier(tier)
		assert.Equal(t, Unlimited, q.DatasetsPerMonth, tier)
		assert.Equal(t, Unlimited, q.AIMessagesPerMonth, tier)
		assert.Equal(t, Unlimited, q.ReportsPerMonth, tier)
	}
}

func TestPolicyTable_UnknownTierFallsBackToFree(t *testing.T) {
	table := NewDefaultPolicyTable()

	q := table.ForTier("platinum")
	assert.Equal(t, table.ForTier("free"), q)
	assert.False(t, table.HasTier("platinum"))
}

func TestNewPolicyTable_AlwaysCarriesFreeEntry(t *testing.T) {
	table := NewPolicyTable(map[string]Quotas{
		"pro": {DatasetsPerMonth: Unlimited, AIMessagesPerMonth: Unlimited, ReportsPerMonth: Unlimited},
	})

	assert.True(t, table.HasTier("free"))
	assert.Equal(t, 5, table.ForTier("free").DatasetsPerMonth)
}

func TestNewPolicyTable_CopiesInput(t *testing.T) {
	src := map[string]Quotas{
		"free": {DatasetsPerMonth: 10, AIMessagesPerMonth: 100, ReportsPerMonth: 5},
	}
	table := NewPolicyTable(src)

	src["free"] = Quotas{DatasetsPerMonth: 0}
	assert.Equal(t, 10, table.ForTier("free").DatasetsPerMonth)
}

func TestQuotas_QuotaFor(t *testing.T) {
	q := Quotas{DatasetsPerMonth: 5, AIMessagesPerMonth: 50, ReportsPerMonth: 3}

	assert.Equal(t, 5, q.QuotaFor(ResourceDataset))
	assert.Equal(t, 50, q.QuotaFor(ResourceAIMessage))
	assert.Equal(t, 3, q.QuotaFor(ResourceReport))
	assert.Equal(t, 0, q.QuotaFor(ResourceType("bogus")))
}

func TestParseResourceType(t *testing.T) {
	for _, raw := range []string{"dataset", "ai_message", "report"} {
		parsed, err := ParseResourceType(raw)
		assert.NoError(t, err)
		assert.Equal(t, raw, parsed.String())
	}

	_, err := ParseResourceType("datasets")
	assert.ErrorIs(t, err, ErrUnknownResourceType)

	_, err = ParseResourceType("")
	assert.ErrorIs(t, err, ErrUnknownResourceType)
}

func TestResourceType_DisplayName(t *testing.T) {
	assert.Equal(t, "dataset", ResourceDataset.DisplayName())
	assert.Equal(t, "AI message", ResourceAIMessage.DisplayName())
	assert.Equal(t, "public report", ResourceReport.DisplayName())
}
