package api

import (
	"github.com/Sunshine-Research/Sentinel/core/base"
)

// Entry admits one call to resourceName under a fresh top-level
// context, direction flowType, batch size count and the resolved
// parameter-flow arguments, if any (spec.md §6, "entry(name, direction,
// count=1, args=...)"). A non-nil *base.BlockError means the call was
// rejected; the caller must not proceed, and has nothing to Exit.
func Entry(resourceName string, flowType base.TrafficType, opts ...EntryOption) (*base.Entry, *base.BlockError) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	ctx := o.ctx
	if ctx == nil {
		ctx = contextFor(o.contextName, o.origin)
	}

	resource := base.NewResourceWrapper(resourceName, o.resourceType, flowType)
	input := &base.Input{BatchCount: o.batchCount, Prioritized: o.prioritized, Args: o.args}

	entry, result := slotChainFor(resourceName).Entry(ctx, resource, input)
	if result.IsBlocked() {
		return entry, result.BlockError()
	}
	return entry, nil
}

// EntryWithPriority is Entry with prioritized admission requested, the
// only way a flow-control default controller will attempt
// tryOccupyNext instead of rejecting outright (spec.md §6, §4.3).
func EntryWithPriority(resourceName string, flowType base.TrafficType, opts ...EntryOption) (*base.Entry, *base.BlockError) {
	opts = append(opts, WithPriority(true))
	return Entry(resourceName, flowType, opts...)
}

// AsyncEntry admits a call the same way Entry does, but the Entry it
// returns is never linked into the calling goroutine's entry stack: it
// runs against a private *base.EntryContext that starts with no parent
// entry, so a later out-of-order Exit elsewhere can never force-unwind
// it, and it can never be force-unwound on behalf of something else
// (spec.md §6, "immediately unlinked from the current context ... its
// exit must occur with the async context captured at creation").
func AsyncEntry(resourceName string, flowType base.TrafficType, opts ...EntryOption) (*base.Entry, *base.BlockError) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	parent := o.ctx
	if parent == nil {
		parent = contextFor(o.contextName, o.origin)
	}
	detachedCtx := base.NewEntryContext(parent.Name, parent.Origin, parent.EntranceNode)
	detachedCtx.IsNull = parent.IsNull

	resource := base.NewResourceWrapper(resourceName, o.resourceType, flowType)
	input := &base.Input{BatchCount: o.batchCount, Prioritized: o.prioritized, Args: o.args}

	entry, result := slotChainFor(resourceName).Entry(detachedCtx, resource, input)
	if result.IsBlocked() {
		return entry, result.BlockError()
	}
	return entry, nil
}

// Exit completes entry, recording its outcome and popping it off its
// context's entry stack (spec.md §6, "Entry.exit(count=1, args=...)").
// It is a no-op on a nil entry so callers can Exit unconditionally after
// a BlockError check.
func Exit(entry *base.Entry) {
	if entry == nil {
		return
	}
	slotChainFor(entry.Resource().Name()).Exit(entry)
}
