package api

import (
	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/config"
	"github.com/Sunshine-Research/Sentinel/core/stat"
	"github.com/Sunshine-Research/Sentinel/logging"
)

var nullContext = &base.EntryContext{IsNull: true}

// contextFor builds the EntryContext a new top-level Entry call runs
// under. Go has no goroutine-local storage to thread it implicitly
// (core/base/context.go), so each top-level call gets a fresh
// *EntryContext; nested Entry calls within the same call tree thread it
// explicitly via WithContext. Past config.MaxContextAmount distinct
// context names, new names are routed to the shared null-context
// instead of growing the entrance-node registry unbounded (spec.md §3).
func contextFor(contextName, origin string) *base.EntryContext {
	if contextName == "" {
		contextName = "sentinel_default_context"
	}

	if !stat.HasEntranceNode(contextName) && stat.EntranceNodeCount() >= int(config.MaxContextAmount()) {
		logging.Warnf("sentinel: context amount exceeds the threshold %d, routing %q to the null context",
			config.MaxContextAmount(), contextName)
		return nullContext
	}

	entrance := stat.GetOrCreateEntranceNode(contextName)
	return base.NewEntryContext(contextName, origin, entrance)
}
