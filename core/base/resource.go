package base

import "fmt"

// ResourceType classifies a resource for display/metric purposes; it
// carries no behavior of its own (spec.md §3).
type ResourceType int32

const (
	ResTypeCommon ResourceType = iota
	ResTypeWeb
	ResTypeRPC
	ResTypeAPIGateway
	ResTypeDBSQL
	ResTypeCache
	ResTypeMQ
)

// TrafficType is INBOUND or OUTBOUND (spec.md §3, "Resource").
type TrafficType int32

const (
	Inbound TrafficType = iota
	Outbound
)

func (t TrafficType) String() string {
	switch t {
	case Inbound:
		return "Inbound"
	case Outbound:
		return "Outbound"
	default:
		return fmt.Sprintf("TrafficType(%d)", int32(t))
	}
}

// ResourceWrapper is the identity of a call site. Equality and hashing
// (via Name()) use the name only; FlowType is metadata (spec.md §3).
type ResourceWrapper struct {
	name           string
	classification ResourceType
	flowType       TrafficType
}

func NewResourceWrapper(name string, classification ResourceType, flowType TrafficType) *ResourceWrapper {
	return &ResourceWrapper{name: name, classification: classification, flowType: flowType}
}

func (r *ResourceWrapper) Name() string                 { return r.name }
func (r *ResourceWrapper) Classification() ResourceType { return r.classification }
func (r *ResourceWrapper) FlowType() TrafficType         { return r.flowType }

func (r *ResourceWrapper) String() string {
	return fmt.Sprintf("ResourceWrapper{name=%s, flowType=%s, classification=%d}", r.name, r.flowType, r.classification)
}
