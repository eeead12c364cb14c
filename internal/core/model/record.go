package model

// MappingRecord is one row of the capability-to-technique mapping table.
type MappingRecord struct {
	MappingFramework        string `json:"mapping_framework"`
	MappingFrameworkVersion string `json:"mapping_framework_version"`
	CapabilityGroup         string `json:"capability_group"`
	CapabilityID            string `json:"capability_id"`
	CapabilityDescription   string `json:"capability_description"`
	MappingType             string `json:"mapping_type"`
	AttackObjectID          string `json:"attack_object_id"`
	AttackObjectName        string `json:"attack_object_name"`
	AttackVersion           string `json:"attack_version"`
	TechnologyDomain        string `json:"technology_domain"`
	References              string `json:"references"`
	Comments                string `json:"comments"`
	Organization            string `json:"organization"`
	CreationDate            string `json:"creation_date"`
	LastUpdate              string `json:"last_update"`
}
