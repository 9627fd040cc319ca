package base

// TotalInboundResourceName is the resource name of the global inbound
// aggregate node consulted by the System guard (spec.md §4.6).
const TotalInboundResourceName = "__total_inbound_traffic__"

// DefaultStatisticMaxRt seeds MinRT() when no sample exists yet.
const DefaultStatisticMaxRt int64 = 60000
