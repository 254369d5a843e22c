package shared

const (
	CapabilityTypeSkill      = "SKILL"
	CapabilityTypePermission = "PERMISSION"
	CapabilityTypeAsset      = "ASSET"
)

// Capability is a named, typed attribute a resource can offer.
type Capability struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Skill creates a SKILL capability.
func Skill(name string) Capability {
	return Capability{Name: name, Type: CapabilityTypeSkill}
}

// Permission creates a PERMISSION capability.
func Permission(name string) Capability {
	return Capability{Name: name, Type: CapabilityTypePermission}
}

// Asset creates an ASSET capability.
func Asset(name string) Capability {
	return Capability{Name: name, Type: CapabilityTypeAsset}
}

// Skills creates one SKILL capability per name.
func Skills(names ...string) []Capability {
	capabilities := make([]Capability, 0, len(names))
	for _, name := range names {
		capabilities = append(capabilities, Skill(name))
	}
	return capabilities
}

// Permissions creates one PERMISSION capability per name.
func Permissions(names ...string) []Capability {
	capabilities := make([]Capability, 0, len(names))
	for _, name := range names {
		capabilities = append(capabilities, Permission(name))
	}
	return capabilities
}

// Assets creates one ASSET capability per name.
func Assets(names ...string) []Capability {
	capabilities := make([]Capability, 0, len(names))
	for _, name := range names {
		capabilities = append(capabilities, Asset(name))
	}
	return capabilities
}

// IsOfType reports whether the capability has the given type.
func (c Capability) IsOfType(capabilityType string) bool {
	return c.Type == capabilityType
}
