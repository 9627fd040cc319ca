package hotspot

import (
	"time"

	"github.com/Sunshine-Research/Sentinel/core/base"
)

const (
	SlotName  = "sentinel-core-hotspot-slot"
	SlotOrder = 4000
)

// Slot is the hot-parameter RuleCheckSlot (spec.md §4.2, §4.5). It runs
// after Degrade (order 3000); a per-value verdict here can still sleep
// out a should-wait locally, same as the flow slot.
type Slot struct{}

func (s *Slot) Name() string  { return SlotName }
func (s *Slot) Order() uint32 { return SlotOrder }

func (s *Slot) Check(ctx *base.EntryContext, entry *base.Entry) *base.TokenResult {
	for _, c := range controllersFor(entry.Resource().Name()) {
		result := c.Check(entry)
		if result.IsBlocked() {
			return result
		}
		if result.IsShouldWait() {
			if wait := result.NanosToWait(); wait > 0 {
				time.Sleep(wait)
			}
		}
	}
	return base.ResultPass()
}
