package api

import "github.com/Sunshine-Research/Sentinel/core/base"

type entryOptions struct {
	ctx          *base.EntryContext
	contextName  string
	origin       string
	resourceType base.ResourceType
	batchCount   uint32
	prioritized  bool
	args         []interface{}
}

func defaultOptions() *entryOptions {
	return &entryOptions{resourceType: base.ResTypeCommon, batchCount: 1}
}

type EntryOption func(*entryOptions)

// WithContext threads an existing *base.EntryContext through a nested
// Entry call instead of starting a fresh top-level one (core/base's
// "caller threads the same *EntryContext explicitly" convention).
func WithContext(ctx *base.EntryContext) EntryOption {
	return func(o *entryOptions) { o.ctx = ctx }
}

func WithContextName(name string) EntryOption {
	return func(o *entryOptions) { o.contextName = name }
}

func WithOrigin(origin string) EntryOption {
	return func(o *entryOptions) { o.origin = origin }
}

func WithResourceType(t base.ResourceType) EntryOption {
	return func(o *entryOptions) { o.resourceType = t }
}

func WithBatchCount(count uint32) EntryOption {
	return func(o *entryOptions) {
		if count > 0 {
			o.batchCount = count
		}
	}
}

func WithPriority(prioritized bool) EntryOption {
	return func(o *entryOptions) { o.prioritized = prioritized }
}

func WithArgs(args ...interface{}) EntryOption {
	return func(o *entryOptions) { o.args = args }
}
