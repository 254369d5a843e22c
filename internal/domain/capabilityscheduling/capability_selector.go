package capabilityscheduling

import "github.com/grzesiek-galezowski/smartschedule-go/internal/domain/shared"

// SelectingPolicy describes which subsets of a resource's capabilities are
// offered at the same time.
type SelectingPolicy string

const (
	// OneOfAtATime means the resource performs exactly one of the capabilities.
	OneOfAtATime SelectingPolicy = "ONE_OF_ALL"
	// AllSimultaneously means the resource performs all capabilities at once.
	AllSimultaneously SelectingPolicy = "ALL_SIMULTANEOUSLY"
)

// CapabilitySelector is the matching predicate between a resource's declared
// capabilities and demanded ones.
type CapabilitySelector struct {
	Capabilities    []shared.Capability `json:"capabilities"`
	SelectingPolicy SelectingPolicy     `json:"selectingPolicy"`
}

// CanPerformOneOf declares mutually exclusive capabilities.
func CanPerformOneOf(capabilities ...shared.Capability) CapabilitySelector {
	return CapabilitySelector{Capabilities: capabilities, SelectingPolicy: OneOfAtATime}
}

// CanPerformAllAtTheTime declares simultaneously available capabilities.
func CanPerformAllAtTheTime(capabilities ...shared.Capability) CapabilitySelector {
	return CapabilitySelector{Capabilities: capabilities, SelectingPolicy: AllSimultaneously}
}

// CanJustPerform declares a single capability.
func CanJustPerform(capability shared.Capability) CapabilitySelector {
	return CapabilitySelector{Capabilities: []shared.Capability{capability}, SelectingPolicy: OneOfAtATime}
}

// CanPerform reports whether the selector satisfies all demanded capabilities
// at once. A single demanded capability only needs to be present; demanding
// several requires the AllSimultaneously policy.
func (s CapabilitySelector) CanPerform(capabilities ...shared.Capability) bool {
	if len(capabilities) == 1 {
		return s.contains(capabilities[0])
	}
	if s.SelectingPolicy != AllSimultaneously {
		return false
	}
	for _, capability := range capabilities {
		if !s.contains(capability) {
			return false
		}
	}
	return true
}

func (s CapabilitySelector) contains(capability shared.Capability) bool {
	for _, candidate := range s.Capabilities {
		if candidate == capability {
			return true
		}
	}
	return false
}
