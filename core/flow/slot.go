package flow

import (
	"time"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/cluster"
)

const (
	SlotName  = "sentinel-core-flow-slot"
	SlotOrder = 2000
)

// Slot is the Flow RuleCheckSlot (spec.md §4.2, §4.3). It evaluates
// every rule configured for the resource in order; a should-wait
// verdict is slept out locally and counted as a pass rather than
// propagated, matching the Statistic slot's "PriorityWaitException is a
// pass" treatment.
type Slot struct{}

func (s *Slot) Name() string  { return SlotName }
func (s *Slot) Order() uint32 { return SlotOrder }

func (s *Slot) Check(ctx *base.EntryContext, entry *base.Entry) *base.TokenResult {
	rc := controllersFor(entry.Resource().Name())
	if rc == nil || len(rc.controllers) == 0 {
		return base.ResultPass()
	}

	count := uint32(1)
	prioritized := false
	if in := entry.Input(); in != nil {
		if in.BatchCount > 0 {
			count = in.BatchCount
		}
		prioritized = in.Prioritized
	}

	for _, tc := range rc.controllers {
		rule := tc.BoundRule()

		node := selectNode(rule, ctx, entry, rc.namedOrigins)

		if rule.isClusterMode() {
			localCheck := func() *base.TokenResult {
				if node == nil {
					return base.ResultPass()
				}
				return tc.PerformChecking(node, count, prioritized)
			}
			result := checkCluster(rule, count, prioritized, localCheck)
			if result.IsBlocked() {
				return result
			}
			if result.IsShouldWait() {
				if wait := result.NanosToWait(); wait > 0 {
					time.Sleep(wait)
				}
			}
			continue
		}

		if node == nil {
			continue
		}
		result := tc.PerformChecking(node, count, prioritized)
		if result.IsBlocked() {
			return result
		}
		if result.IsShouldWait() {
			if wait := result.NanosToWait(); wait > 0 {
				time.Sleep(wait)
			}
			continue
		}
	}
	return base.ResultPass()
}

// checkCluster dispatches a cluster-mode rule to the installed
// cluster.TokenService, applying the client-side disposition table
// (spec.md §4.7). With no service installed, cluster mode degrades to
// localCheck unconditionally rather than silently passing every call.
func checkCluster(rule *Rule, count uint32, prioritized bool, localCheck func() *base.TokenResult) *base.TokenResult {
	svc := cluster.ActiveTokenService()
	if svc == nil {
		return localCheck()
	}
	result := svc.RequestToken(rule.Cluster.FlowID, count, prioritized)
	return cluster.Dispatch(result, rule.Cluster.FallbackToLocal, localCheck)
}
