package authority

import "github.com/Sunshine-Research/Sentinel/core/base"

const (
	SlotName  = "sentinel-core-authority-slot"
	SlotOrder = 1000
)

// Slot is the Authority RuleCheckSlot (spec.md §4.2, §4.6). It runs
// first among the rule checkers (order 1000): an authority failure is
// an identity mismatch, cheaper to reject before any shaping or degrade
// bookkeeping runs.
type Slot struct{}

func (s *Slot) Name() string  { return SlotName }
func (s *Slot) Order() uint32 { return SlotOrder }

func (s *Slot) Check(ctx *base.EntryContext, entry *base.Entry) *base.TokenResult {
	for _, rule := range rulesFor(entry.Resource().Name()) {
		if ctx.Origin == "" || rule.LimitApp == "" {
			continue
		}
		match := rule.matches(ctx.Origin)
		switch rule.Strategy {
		case StrategyBlack:
			if match {
				return blocked(rule)
			}
		case StrategyWhite:
			if !match {
				return blocked(rule)
			}
		}
	}
	return base.ResultPass()
}

func blocked(rule *Rule) *base.TokenResult {
	return base.ResultBlocked(base.NewBlockErrorWithCause(
		base.BlockTypeAuthority, rule.Resource, "authority check blocked", rule, nil))
}
