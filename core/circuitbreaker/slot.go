package circuitbreaker

import "github.com/Sunshine-Research/Sentinel/core/base"

const (
	SlotName  = "sentinel-core-circuitbreaker-slot"
	SlotOrder = 3000
)

// Slot is the Degrade RuleCheckSlot (spec.md §4.2, §4.4). It runs after
// Flow (order 2000) and before HotSpot (order 4000), so a call the flow
// controllers already rejected never reaches the breakers.
type Slot struct{}

func (s *Slot) Name() string  { return SlotName }
func (s *Slot) Order() uint32 { return SlotOrder }

func (s *Slot) Check(ctx *base.EntryContext, entry *base.Entry) *base.TokenResult {
	for _, b := range breakersFor(entry.Resource().Name()) {
		if result := b.TryPass(); result.IsBlocked() {
			return result
		}
	}
	return base.ResultPass()
}
