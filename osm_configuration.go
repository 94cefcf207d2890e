package carplan

// OsmConfiguration allows to filter OSM objects which become roads and intersections
type OsmConfiguration struct {
	// EntityName is the key of way tag marking roads. Currently 'highway' is expected
	EntityName string
	// Tags is the set of allowed values of EntityName tag. Empty set allows any value
	Tags []string
	// JunctionTag is the key of node tag marking intersections
	JunctionTag string
}

// DefaultOsmConfiguration accepts every highway way and every node tagged as junction
func DefaultOsmConfiguration() *OsmConfiguration {
	return &OsmConfiguration{
		EntityName:  "highway",
		JunctionTag: "junction",
	}
}

// CheckTag checks if incoming tag value is represented in configuration
func (cfg *OsmConfiguration) CheckTag(tag string) bool {
	if tag == "" {
		return false
	}
	if len(cfg.Tags) == 0 {
		return true
	}
	for i := range cfg.Tags {
		if cfg.Tags[i] == tag {
			return true
		}
	}
	return false
}
