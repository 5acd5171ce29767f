package models

type OrgType string

const (
	OrgTypePolice             OrgType = "POLICE"
	OrgTypeIntelligence       OrgType = "INTELLIGENCE"
	OrgTypeDefence            OrgType = "DEFENCE"
	OrgTypeEmbassy            OrgType = "EMBASSY"
	OrgTypeCyberSecurity      OrgType = "CYBER_SECURITY"
	OrgTypeCustoms            OrgType = "CUSTOMS"
	OrgTypeBorderControl      OrgType = "BORDER_CONTROL"
	OrgTypeTrade              OrgType = "TRADE"
	OrgTypeNarcotics          OrgType = "NARCOTICS"
	OrgTypeAntiCorruption     OrgType = "ANTI_CORRUPTION"
	OrgTypeTelecommunications OrgType = "TELECOMMUNICATIONS"
	OrgTypeGovernment         OrgType = "GOVERNMENT"
	OrgTypeOther              OrgType = "OTHER"
)

// OrgTypes lists every valid organization type, in display order.
var OrgTypes = []OrgType{
	OrgTypePolice, OrgTypeIntelligence, OrgTypeDefence, OrgTypeEmbassy,
	OrgTypeCyberSecurity, OrgTypeCustoms, OrgTypeBorderControl, OrgTypeTrade,
	OrgTypeNarcotics, OrgTypeAntiCorruption, OrgTypeTelecommunications,
	OrgTypeGovernment, OrgTypeOther,
}

// OrgTypeLabels maps a type to its human-readable label.
var OrgTypeLabels = map[OrgType]string{
	OrgTypePolice:             "Police",
	OrgTypeIntelligence:       "Intelligence",
	OrgTypeDefence:            "Defence",
	OrgTypeEmbassy:            "Embassy",
	OrgTypeCyberSecurity:      "Cyber Security",
	OrgTypeCustoms:            "Customs",
	OrgTypeBorderControl:      "Border Control",
	OrgTypeTrade:              "Trade",
	OrgTypeNarcotics:          "Narcotics",
	OrgTypeAntiCorruption:     "Anti-Corruption",
	OrgTypeTelecommunications: "Telecommunications",
	OrgTypeGovernment:         "Government",
	OrgTypeOther:              "Other",
}

// IsValidOrgType reports whether t is one of the closed set of types.
// Country is deliberately NOT validated anywhere: it is free text.
func IsValidOrgType(t string) bool {
	_, ok := OrgTypeLabels[OrgType(t)]
	return ok
}

type Organization struct {
	Base
	Name     string  `gorm:"uniqueIndex;not null" json:"name"`
	FullName string  `json:"full_name,omitempty"`
	Country  string  `gorm:"not null;index" json:"country"`
	Type     OrgType `gorm:"not null;index" json:"type"`

	Description string `gorm:"type:text" json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Established *int   `json:"established,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`

	IsActive bool `gorm:"default:true;index" json:"is_active"`

	// Relationships
	Personnel []Personnel `gorm:"foreignKey:OrganizationID" json:"personnel,omitempty"`
}

func (Organization) TableName() string {
	return "organizations"
}
