package combine

import "fmt"

// Group is a coarse position bucket used for modelling
type Group string

const (
	GroupRB   Group = "RB"
	GroupTE   Group = "TE"
	GroupWR   Group = "WR"
	GroupOL   Group = "OL"
	GroupS    Group = "S"
	GroupCB   Group = "CB"
	GroupLB   Group = "LB"
	GroupEdge Group = "Edge"
	GroupDL   Group = "DL"
)

// Groups returns all nine groups in alphabetical order
func Groups() []Group {
	return []Group{GroupCB, GroupDL, GroupEdge, GroupLB, GroupOL, GroupRB, GroupS, GroupTE, GroupWR}
}

// ParseGroup converts a group name such as "Edge" into a Group
func ParseGroup(s string) (Group, error) {
	for _, g := range Groups() {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown position group: %q", s)
}
