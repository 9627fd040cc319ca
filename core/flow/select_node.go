package flow

import (
	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/stat"
)

const (
	limitAppDefault = "default"
	limitAppOther   = "other"
)

// selectNode implements the limitApp/strategy/origin table (spec.md
// §4.3). A nil return means the rule does not govern this call at all —
// the caller treats that exactly like a pass.
func selectNode(rule *Rule, ctx *base.EntryContext, entry *base.Entry, namedOrigins map[string]bool) base.StatNode {
	origin := ctx.Origin

	switch {
	case rule.LimitApp == limitAppDefault:
		return selectByStrategy(rule, ctx, entry)

	case origin != "" && origin != limitAppDefault && origin != limitAppOther && rule.LimitApp == origin:
		return selectByStrategy(rule, ctx, entry)

	case rule.LimitApp == limitAppOther:
		if namedOrigins[origin] {
			return nil
		}
		return selectByStrategy(rule, ctx, entry)

	default:
		return nil
	}
}

func selectByStrategy(rule *Rule, ctx *base.EntryContext, entry *base.Entry) base.StatNode {
	switch rule.Strategy {
	case Relate:
		return clusterNodeOrNil(rule.RefResource)
	case Chain:
		if rule.RefResource == ctx.Name {
			return entry.CurNode
		}
		return nil
	default: // Direct
		if rule.LimitApp == limitAppDefault {
			return entry.ClusterNode
		}
		return entry.OriginNode
	}
}

func clusterNodeOrNil(resource string) base.StatNode {
	node := stat.GetClusterNode(resource)
	if node == nil {
		return nil
	}
	return node
}
