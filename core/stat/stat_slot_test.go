package stat

import (
	"testing"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/stretchr/testify/assert"
)

func TestStatisticSlot_PassBlockComplete(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	resource := base.NewResourceWrapper("test-resource", base.ResTypeCommon, base.Inbound)
	ctx := base.NewEntryContext("test-ctx", "caller-a", GetOrCreateEntranceNode("test-ctx"))
	entry := base.NewEntry(ctx, resource, &base.Input{BatchCount: 1})

	(&NodeSelectorSlot{}).Prepare(ctx, entry)
	(&ClusterBuilderSlot{}).Prepare(ctx, entry)

	slot := &StatisticSlot{}
	slot.OnEntryPassed(ctx, entry)

	assert.EqualValues(t, 1, entry.CurNode.GetSum(base.MetricEventPass))
	assert.EqualValues(t, 1, entry.ClusterNode.GetSum(base.MetricEventPass))
	assert.EqualValues(t, 1, entry.OriginNode.GetSum(base.MetricEventPass))
	assert.EqualValues(t, 1, InboundNode().GetSum(base.MetricEventPass))
	assert.EqualValues(t, 1, entry.CurNode.CurrentConcurrency())

	entry.SetError(nil)
	slot.OnCompleted(ctx, entry)
	assert.EqualValues(t, 1, entry.CurNode.GetSum(base.MetricEventComplete))
	assert.EqualValues(t, 0, entry.CurNode.CurrentConcurrency())
}

func TestStatisticSlot_Blocked(t *testing.T) {
	ResetForTest()
	defer ResetForTest()

	resource := base.NewResourceWrapper("test-resource-2", base.ResTypeCommon, base.Inbound)
	ctx := base.NewEntryContext("test-ctx-2", "", GetOrCreateEntranceNode("test-ctx-2"))
	entry := base.NewEntry(ctx, resource, nil)

	(&NodeSelectorSlot{}).Prepare(ctx, entry)
	(&ClusterBuilderSlot{}).Prepare(ctx, entry)

	slot := &StatisticSlot{}
	blockErr := base.NewBlockError(base.BlockTypeFlow, resource.Name())
	slot.OnEntryBlocked(ctx, entry, blockErr)

	assert.EqualValues(t, 1, entry.CurNode.GetSum(base.MetricEventBlock))
	assert.EqualValues(t, 0, entry.CurNode.GetSum(base.MetricEventPass))
}

type ignoredErr struct{}

func (ignoredErr) Error() string { return "ignored" }

func TestStatisticSlot_IgnoredExceptionDoesNotCountAsError(t *testing.T) {
	ResetForTest()
	defer ResetForTest()
	defer base.ClearExceptionClassifiersForTest()

	resource := base.NewResourceWrapper("test-resource-3", base.ResTypeCommon, base.Inbound)
	ctx := base.NewEntryContext("test-ctx-3", "", GetOrCreateEntranceNode("test-ctx-3"))
	entry := base.NewEntry(ctx, resource, &base.Input{BatchCount: 1})

	(&NodeSelectorSlot{}).Prepare(ctx, entry)
	(&ClusterBuilderSlot{}).Prepare(ctx, entry)

	base.SetExceptionClassifier(resource.Name(), base.NewExceptionClassifier().
		Ignore(func(err error) bool { _, ok := err.(ignoredErr); return ok }))

	slot := &StatisticSlot{}
	slot.OnEntryPassed(ctx, entry)

	entry.SetError(ignoredErr{})
	slot.OnCompleted(ctx, entry)

	assert.EqualValues(t, 0, entry.CurNode.GetSum(base.MetricEventError))
	assert.EqualValues(t, 1, entry.CurNode.GetSum(base.MetricEventComplete))
}
