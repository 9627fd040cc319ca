package config

const (
	// UnknownAppName is used when the host process never set an app name.
	UnknownAppName = "unknown_go_service"

	// DefaultMaxResourceAmount caps the number of distinct resource nodes
	// the library will track before it starts logging a soft-cap warning
	// (spec.md §3, ResourceNode registry). Distinct from the slot-chain's
	// hard 6000-resource cap in §4.2.
	DefaultMaxResourceAmount uint32 = 10000

	// DefaultSlotChainMaxResourceAmount is the hard cap on distinct
	// resources for which a SlotChain will be built (spec.md §4.2).
	DefaultSlotChainMaxResourceAmount uint32 = 6000

	// DefaultMaxContextAmount is the ceiling on live named Contexts
	// before new ones are routed to the shared null-context (spec.md §3).
	DefaultMaxContextAmount uint32 = 2000

	// DefaultSampleCount / DefaultIntervalMs describe the per-resource
	// second-resolution statistic window used for real-time decisions.
	DefaultSampleCount uint32 = 2
	DefaultIntervalMs  uint32 = 1000

	// DefaultSampleCountTotal / DefaultIntervalMsTotal describe the
	// minute-resolution window used for display/totals and for the
	// degrade exception-count grade.
	DefaultSampleCountTotal uint32 = 60
	DefaultIntervalMsTotal  uint32 = 60000

	// DefaultStatisticMaxRt seeds MinRT() when no sample exists yet.
	DefaultStatisticMaxRt int64 = 60000

	// DefaultSystemStatCollectIntervalMs is how often the system metric
	// collector samples CPU/load (spec.md §4.6).
	DefaultSystemStatCollectIntervalMs uint32 = 1000

	// DefaultWarmUpColdFactor is the coldFactor used by the warm-up
	// shaping controller when a rule does not override it (spec.md §4.3).
	DefaultWarmUpColdFactor uint32 = 3

	// DefaultOccupyTimeoutMs bounds how long the default shaping
	// controller's priority-wait path may sleep (spec.md §4.3/§5).
	DefaultOccupyTimeoutMs uint32 = 500

	// DefaultDropValveMs caps the RT recorded by the statistic slot
	// (spec.md §4.2).
	DefaultDropValveMs uint64 = 4900

	ConfigFilePathEnvKey = "SENTINEL_CONFIG_FILE_PATH"
	AppNameEnvKey        = "SENTINEL_APP_NAME"
)
