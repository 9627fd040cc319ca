package hotspot

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Sunshine-Research/Sentinel/core/base"
)

const (
	StatSlotName  = "sentinel-core-hotspot-concurrency-stat-slot"
	StatSlotOrder = 4000
)

// ConcurrencyStatSlot hooks addThreadCount/decreaseThreadCount into the
// pass/complete edges of the call, the way the thread-grade check needs
// (spec.md §4.5, "addThreadCount/decreaseThreadCount hook into the
// statistic slot's pass/exit"). Only rules with MetricConcurrency care;
// QPS-grade rules are entirely handled inside the RuleCheckSlot.
type ConcurrencyStatSlot struct{}

func (s *ConcurrencyStatSlot) Name() string  { return StatSlotName }
func (s *ConcurrencyStatSlot) Order() uint32 { return StatSlotOrder }

func (s *ConcurrencyStatSlot) OnEntryPassed(ctx *base.EntryContext, entry *base.Entry) {
	s.adjust(entry, 1)
}

func (s *ConcurrencyStatSlot) OnEntryBlocked(ctx *base.EntryContext, entry *base.Entry, blockErr *base.BlockError) {
}

func (s *ConcurrencyStatSlot) OnCompleted(ctx *base.EntryContext, entry *base.Entry) {
	s.adjust(entry, -1)
}

func (s *ConcurrencyStatSlot) adjust(entry *base.Entry, delta int64) {
	input := entry.Input()
	if input == nil || len(input.Args) == 0 {
		return
	}

	controllers := controllersFor(entry.Resource().Name())
	if len(controllers) == 0 {
		return
	}

	g, _ := errgroup.WithContext(context.Background())
	for _, c := range controllers {
		c := c
		if c.rule.MetricType != MetricConcurrency {
			continue
		}
		idx, ok := c.resolveIndex(len(input.Args))
		if !ok {
			continue
		}
		for _, v := range flatten(input.Args[idx]) {
			v := v
			g.Go(func() error {
				c.metric.addThreadCount(paramKey(v), delta)
				return nil
			})
		}
	}
	_ = g.Wait()
}
