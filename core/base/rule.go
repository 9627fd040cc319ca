package base

import "fmt"

// SentinelRule is the common shape every rule kind (flow, degrade,
// paramFlow, authority, system) implements (spec.md §3, "Rules").
type SentinelRule interface {
	fmt.Stringer
	ResourceName() string
}
