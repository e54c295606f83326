package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iops/internal/domain/usage"
)

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTierPolicies(t *testing.T) {
	t.Run("empty path returns built-in defaults", func(t *testing.T) {
		table, err := LoadTierPolicies("")
		require.NoError(t, err)

		free := table.ForTier("free")
		assert.Equal(t, 5, free.DatasetsPerMonth)
		assert.Equal(t, 50, free.AIMessagesPerMonth)
		assert.Equal(t, 3, free.ReportsPerMonth)

		pro := table.ForTier("pro")
		assert.Equal(t, usage.Unlimited, pro.DatasetsPerMonth)
	})

	t.Run("override file replaces quotas", func(t *testing.T) {
		path := writePolicyFile(t, `
tiers:
  free:
    datasets_per_month: 10
    ai_messages_per_month: 100
    reports_per_month: 5
  pro:
    datasets_per_month: -1
    ai_messages_per_month: -1
    reports_per_month: -1
`)

		table, err := LoadTierPolicies(path)
		require.NoError(t, err)

		free := table.ForTier("free")
		assert.Equal(t, 10, free.DatasetsPerMonth)
		assert.Equal(t, 100, free.AIMessagesPerMonth)
		assert.Equal(t, 5, free.ReportsPerMonth)

		assert.Equal(t, usage.Unlimited, table.ForTier("pro").AIMessagesPerMonth)
		assert.False(t, table.HasTier("enterprise"))
	})

	t.Run("file without free tier keeps the built-in fallback", func(t *testing.T) {
		path := writePolicyFile(t, `
tiers:
  pro:
    datasets_per_month: -1
    ai_messages_per_month: -1
    reports_per_month: -1
`)

		table, err := LoadTierPolicies(path)
		require.NoError(t, err)

		assert.True(t, table.HasTier("free"))
		assert.Equal(t, 5, table.ForTier("free").DatasetsPerMonth)
		assert.Equal(t, 5, table.ForTier("platinum").DatasetsPerMonth)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTierPolicies(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writePolicyFile(t, "tiers: [not a map")
		_, err := LoadTierPolicies(path)
		assert.Error(t, err)
	})

	t.Run("file with no tiers", func(t *testing.T) {
		path := writePolicyFile(t, "tiers: {}\n")
		_, err := LoadTierPolicies(path)
		assert.Error(t, err)
	})
}
