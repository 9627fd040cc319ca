package base

import "github.com/pkg/errors"

// MetricEvent enumerates the counters a bucket tracks (spec.md §3,
// "Sliding-window metric").
type MetricEvent int8

const (
	MetricEventPass MetricEvent = iota
	MetricEventBlock
	MetricEventComplete
	MetricEventError
	MetricEventRt
	MetricEventOccupiedPass
	MetricEventWaiting
	// MetricEventCount is the number of distinct MetricEvent kinds; callers
	// sizing a per-event array should use it rather than a literal.
	MetricEventCount
)

type TimePredicate func(windowStartMs uint64) bool

// ReadStat is the read side of a statistics node.
type ReadStat interface {
	GetQPS(event MetricEvent) float64
	GetPreviousQPS(event MetricEvent) float64
	GetSum(event MetricEvent) int64
	// GetTotalSum returns the minute-resolution total for event, used by
	// the circuit breaker's exception-count grade (spec.md §4.4).
	GetTotalSum(event MetricEvent) int64
	MinRT() float64
	AvgRT() float64
}

// WriteStat is the write side of a statistics node.
type WriteStat interface {
	AddCount(event MetricEvent, count int64)
}

// ConcurrencyStat tracks the live thread/goroutine count for a resource,
// used by the default flow controller's thread-grade check (spec.md §4.3).
type ConcurrencyStat interface {
	CurrentConcurrency() int32
	IncreaseConcurrency()
	DecreaseConcurrency()
}

// Occupier lets the default flow controller reserve pass capacity in an
// upcoming window for a prioritized caller instead of rejecting outright
// (spec.md §4.3, "tryOccupyNext").
type Occupier interface {
	TryOccupyNext(acquireCount int64, threshold float64) (waitMs int64, ok bool)
}

// StatNode is the common capability every node in the statistics graph
// (StatisticNode/DefaultNode/ClusterNode/EntranceNode) exposes (spec.md
// §3, "Nodes").
type StatNode interface {
	ReadStat
	WriteStat
	ConcurrencyStat
	Occupier
}

var (
	ErrIllegalStatisticParams = errors.New("sentinel: invalid sampleCount/intervalInMs for a sliding window")
)

func CheckValidityForStatistic(sampleCount, intervalInMs uint32) error {
	if intervalInMs == 0 || sampleCount == 0 || intervalInMs%sampleCount != 0 {
		return ErrIllegalStatisticParams
	}
	return nil
}
