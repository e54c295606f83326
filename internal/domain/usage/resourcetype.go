package usage

import "fmt"

// ResourceType identifies one of the metered actions tracked per user per month.
type ResourceType string

const (
	ResourceDataset   ResourceType = "dataset"
	ResourceAIMessage ResourceType = "ai_message"
	ResourceReport    ResourceType = "report"
)

// AllResourceTypes lists every recognized resource type.
func AllResourceTypes() []ResourceType {
	return []ResourceType{ResourceDataset, ResourceAIMessage, ResourceReport}
}

// ParseResourceType validates a raw resource type string. Anything outside the
// three metered kinds is a caller programming error, never a quota failure.
func ParseResourceType(raw string) (ResourceType, error) {
	switch ResourceType(raw) {
	case ResourceDataset, ResourceAIMessage, ResourceReport:
		return ResourceType(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownResourceType, raw)
	}
}

func (r ResourceType) String() string {
	return string(r)
}

// DisplayName returns the human-readable resource name used in quota denial
// messages shown to end users.
func (r ResourceType) DisplayName() string {
	switch r {
	case ResourceDataset:
		return "dataset"
	case ResourceAIMessage:
		return "AI message"
	case ResourceReport:
		return "public report"
	default:
		return string(r)
	}
}

// IsValid reports whether r is one of the recognized resource types.
func (r ResourceType) IsValid() bool {
	switch r {
	case ResourceDataset, ResourceAIMessage, ResourceReport:
		return true
	default:
		return false
	}
}
