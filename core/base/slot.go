package base

// BaseSlot is embedded by every slot kind; slots within each phase run
// in ascending Order() (spec.md §4.2, "the default ordering is fixed").
type BaseSlot interface {
	Name() string
	Order() uint32
}

// StatPrepareSlot runs first, front-to-back, and attaches statistics
// nodes to the EntryContext/Entry (spec.md §4.2: NodeSelector,
// ClusterBuilder). Prepare must not panic; SlotChain recovers regardless.
type StatPrepareSlot interface {
	BaseSlot
	Prepare(ctx *EntryContext, entry *Entry)
}

// RuleCheckSlot evaluates one governance concern (spec.md §4.2: Authority,
// System, Flow, Degrade, ParamFlow) and returns nil (or a passing
// TokenResult) to continue, or a blocked/should-wait TokenResult to stop
// the chain. entry carries the nodes StatPrepareSlots attached plus the
// call's Input (batch count, priority flag, args).
type RuleCheckSlot interface {
	BaseSlot
	Check(ctx *EntryContext, entry *Entry) *TokenResult
}

// StatSlot records bookkeeping once the outcome of the rule-check phase
// is known (spec.md §4.2, "Statistic"). Multiple StatSlots can coexist —
// the core pass/block/RT bookkeeping and the hot-key concurrency counter
// both implement this. entry
// is passed explicitly (rather than read off ctx.CurEntry()) because a
// blocked entry is never pushed onto the context's stack.
type StatSlot interface {
	BaseSlot
	OnEntryPassed(ctx *EntryContext, entry *Entry)
	OnEntryBlocked(ctx *EntryContext, entry *Entry, blockErr *BlockError)
	OnCompleted(ctx *EntryContext, entry *Entry)
}
