package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"iops/internal/domain/usage"
)

// tierPolicyFile is the on-disk shape of a quota override file: a map of
// tier name to quota set.
type tierPolicyFile struct {
	Tiers map[string]usage.Quotas `yaml:"tiers"`
}

// LoadTierPolicies returns the quota table for the deployment. With an empty
// path the built-in defaults apply; otherwise the YAML file replaces them
// wholesale, so an override file must list every tier it wants to keep.
func LoadTierPolicies(path string) (*usage.PolicyTable, error) {
	if path == "" {
		return usage.NewDefaultPolicyTable(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tier policy file: %w", err)
	}

	var file tierPolicyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tier policy file: %w", err)
	}
	if len(file.Tiers) == 0 {
		return nil, fmt.Errorf("tier policy file %s defines no tiers", path)
	}

	return usage.NewPolicyTable(file.Tiers), nil
}
