package base

import "github.com/Sunshine-Research/Sentinel/util"

// EntryContext is per-caller ambient state (spec.md §3, "Context"): an
// entrance name, an optional origin (caller identity), the entrance
// node, and the current entry pointer (the top of the LIFO entry stack).
//
// Unlike the original Java implementation, which threads Context through
// a ThreadLocal, Go has no implicit goroutine-local storage; a caller
// that wants nested Entry calls to share one call tree threads the same
// *EntryContext explicitly, the same way callers thread context.Context.
// api.Entry creates a fresh single-use EntryContext when the caller does
// not supply one (see DESIGN.md, "Context threading").
type EntryContext struct {
	Name   string
	Origin string

	EntranceNode StatNode

	curEntry *Entry

	// IsNull marks the shared null-context instance used once the count
	// of live named contexts would exceed the configured ceiling
	// (spec.md §3). Entries under it short-circuit all checks.
	IsNull bool
}

func NewEntryContext(name, origin string, entranceNode StatNode) *EntryContext {
	return &EntryContext{Name: name, Origin: origin, EntranceNode: entranceNode}
}

func (ctx *EntryContext) CurEntry() *Entry {
	if ctx == nil {
		return nil
	}
	return ctx.curEntry
}

func (ctx *EntryContext) setCurEntry(e *Entry) {
	ctx.curEntry = e
}

// Input carries the per-call arguments threaded through the slot chain:
// batch count, whether the caller asked for priority treatment, and the
// resolved argument list consumed by parameter-flow rules (spec.md §6).
type Input struct {
	BatchCount  uint32
	Prioritized bool
	Args        []interface{}
}

// Entry is a scoped handle for one admitted call (spec.md §3, "Entry").
type Entry struct {
	resource     *ResourceWrapper
	createTimeMs uint64
	ctx          *EntryContext
	input        *Input

	// CurNode is the DefaultNode for (resource, ctx.Name); ClusterNode is
	// the process-wide aggregate for resource; OriginNode is the
	// per-caller breakdown node when ctx.Origin is set. All three, plus
	// the global inbound node for INBOUND resources, are what the
	// Statistic slot updates (spec.md §3, "Invariants").
	CurNode     StatNode
	ClusterNode StatNode
	OriginNode  StatNode

	parent *Entry
	err    error

	exited bool
}

func NewEntry(ctx *EntryContext, resource *ResourceWrapper, input *Input) *Entry {
	return &Entry{
		resource:     resource,
		createTimeMs: util.CurrentTimeMillis(),
		ctx:          ctx,
		input:        input,
		parent:       ctx.CurEntry(),
	}
}

func (e *Entry) Resource() *ResourceWrapper { return e.resource }
func (e *Entry) Context() *EntryContext     { return e.ctx }
func (e *Entry) Input() *Input              { return e.input }
func (e *Entry) Parent() *Entry             { return e.parent }
func (e *Entry) CreateTimeMs() uint64       { return e.createTimeMs }
func (e *Entry) Err() error                 { return e.err }
func (e *Entry) SetError(err error)         { e.err = err }

// RtMs returns the elapsed time since admission, capped by the caller
// (the Statistic slot applies the drop valve, spec.md §4.2).
func (e *Entry) RtMs() uint64 {
	now := util.CurrentTimeMillis()
	if now <= e.createTimeMs {
		return 0
	}
	return now - e.createTimeMs
}
