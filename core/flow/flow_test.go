package flow

import (
	"testing"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/stat"
	"github.com/stretchr/testify/assert"
)

func newTestEntry(t *testing.T, resourceName, ctxName, origin string) (*base.EntryContext, *base.Entry) {
	stat.ResetForTest()
	resource := base.NewResourceWrapper(resourceName, base.ResTypeCommon, base.Inbound)
	ctx := base.NewEntryContext(ctxName, origin, stat.GetOrCreateEntranceNode(ctxName))
	entry := base.NewEntry(ctx, resource, &base.Input{BatchCount: 1})
	(&stat.NodeSelectorSlot{}).Prepare(ctx, entry)
	(&stat.ClusterBuilderSlot{}).Prepare(ctx, entry)
	return ctx, entry
}

func TestFlowSlot_DefaultRejectQPS(t *testing.T) {
	LoadRules([]*Rule{{Resource: "res-a", LimitApp: "default", Grade: GradeQPS, Strategy: Direct, Threshold: 2}})
	defer ClearRules()

	slot := &Slot{}
	var blocked int
	for i := 0; i < 4; i++ {
		ctx, entry := newTestEntryReusing(t, "res-a", "ctx-a", "")
		r := slot.Check(ctx, entry)
		if r.IsBlocked() {
			blocked++
		} else {
			entry.CurNode.AddCount(base.MetricEventPass, 1)
			entry.ClusterNode.AddCount(base.MetricEventPass, 1)
		}
	}
	assert.Greater(t, blocked, 0)
}

// newTestEntryReusing avoids resetting the global registry between
// iterations so pass counts accumulate within one resource's window.
func newTestEntryReusing(t *testing.T, resourceName, ctxName, origin string) (*base.EntryContext, *base.Entry) {
	resource := base.NewResourceWrapper(resourceName, base.ResTypeCommon, base.Inbound)
	ctx := base.NewEntryContext(ctxName, origin, stat.GetOrCreateEntranceNode(ctxName))
	entry := base.NewEntry(ctx, resource, &base.Input{BatchCount: 1})
	(&stat.NodeSelectorSlot{}).Prepare(ctx, entry)
	(&stat.ClusterBuilderSlot{}).Prepare(ctx, entry)
	return ctx, entry
}

func TestFlowSlot_NoRulesPasses(t *testing.T) {
	ClearRules()
	ctx, entry := newTestEntry(t, "res-b", "ctx-b", "")
	slot := &Slot{}
	assert.True(t, slot.Check(ctx, entry).IsPass())
}

func TestSelectNode_OtherFallsBackWhenNotNamed(t *testing.T) {
	ctx, entry := newTestEntry(t, "res-c", "ctx-c", "caller-x")
	rule := &Rule{Resource: "res-c", LimitApp: "other", Strategy: Direct}
	node := selectNode(rule, ctx, entry, map[string]bool{"caller-y": true})
	assert.NotNil(t, node)
}

func TestSelectNode_OtherSkipsWhenNamedElsewhere(t *testing.T) {
	ctx, entry := newTestEntry(t, "res-d", "ctx-d", "caller-x")
	rule := &Rule{Resource: "res-d", LimitApp: "other", Strategy: Direct}
	node := selectNode(rule, ctx, entry, map[string]bool{"caller-x": true})
	assert.Nil(t, node)
}
