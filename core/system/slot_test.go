package system

import (
	"testing"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/stat"
	"github.com/Sunshine-Research/Sentinel/core/system_metric"
	"github.com/stretchr/testify/assert"
)

func TestSlot_LoadBreach(t *testing.T) {
	stat.ResetForTest()
	defer ClearRules()
	LoadRules([]*Rule{{MetricType: MetricLoad, TriggerCount: 1.0}})
	system_metric.SetLoadForTest(5.0)
	defer system_metric.SetLoadForTest(system_metric.NotRetrievedValue)

	resource := base.NewResourceWrapper("res-sys", base.ResTypeCommon, base.Inbound)
	ctx := base.NewEntryContext("ctx-sys", "", stat.GetOrCreateEntranceNode("ctx-sys"))
	entry := base.NewEntry(ctx, resource, nil)

	slot := &Slot{}
	assert.True(t, slot.Check(ctx, entry).IsBlocked())
}

func TestSlot_OutboundNeverChecked(t *testing.T) {
	stat.ResetForTest()
	defer ClearRules()
	LoadRules([]*Rule{{MetricType: MetricLoad, TriggerCount: 0.001}})
	system_metric.SetLoadForTest(5.0)
	defer system_metric.SetLoadForTest(system_metric.NotRetrievedValue)

	resource := base.NewResourceWrapper("res-sys-out", base.ResTypeCommon, base.Outbound)
	ctx := base.NewEntryContext("ctx-sys-out", "", stat.GetOrCreateEntranceNode("ctx-sys-out"))
	entry := base.NewEntry(ctx, resource, nil)

	slot := &Slot{}
	assert.True(t, slot.Check(ctx, entry).IsPass())
}

func TestSlot_NoRulesPasses(t *testing.T) {
	stat.ResetForTest()
	ClearRules()

	resource := base.NewResourceWrapper("res-sys-2", base.ResTypeCommon, base.Inbound)
	ctx := base.NewEntryContext("ctx-sys-2", "", stat.GetOrCreateEntranceNode("ctx-sys-2"))
	entry := base.NewEntry(ctx, resource, nil)

	slot := &Slot{}
	assert.True(t, slot.Check(ctx, entry).IsPass())
}
