package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/flow"
	"github.com/Sunshine-Research/Sentinel/core/stat"
)

func TestEntry_PassesAndExits(t *testing.T) {
	stat.ResetForTest()

	entry, blockErr := Entry("api-test-pass", base.Inbound)
	assert.Nil(t, blockErr)
	assert.NotNil(t, entry)
	Exit(entry)
}

func TestEntry_BlockedByFlowRule(t *testing.T) {
	stat.ResetForTest()
	defer flow.ClearRules()

	assert.NoError(t, LoadRules(KindFlow, []*flow.Rule{{
		Resource: "api-test-flow", LimitApp: "default", Grade: flow.GradeQPS, Strategy: flow.Direct, Threshold: 1,
	}}))

	var blocked int
	for i := 0; i < 4; i++ {
		entry, blockErr := Entry("api-test-flow", base.Inbound)
		if blockErr != nil {
			blocked++
			continue
		}
		Exit(entry)
	}
	assert.Greater(t, blocked, 0)

	rules, err := GetRulesOfResource(KindFlow, "api-test-flow")
	assert.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestEntryWithPriority_SetsPrioritizedOption(t *testing.T) {
	stat.ResetForTest()

	entry, blockErr := EntryWithPriority("api-test-priority", base.Inbound)
	assert.Nil(t, blockErr)
	assert.True(t, entry.Input().Prioritized)
	Exit(entry)
}

func TestAsyncEntry_DoesNotLinkIntoParentEntryStack(t *testing.T) {
	stat.ResetForTest()

	ctx := contextFor("api-test-async-ctx", "")
	parent, blockErr := Entry("api-test-async-parent", base.Inbound, WithContext(ctx))
	assert.Nil(t, blockErr)

	asyncEntry, blockErr := AsyncEntry("api-test-async-child", base.Inbound, WithContext(ctx))
	assert.Nil(t, blockErr)
	assert.NotNil(t, asyncEntry)
	assert.Nil(t, asyncEntry.Parent())
	assert.NotSame(t, ctx, asyncEntry.Context())

	Exit(asyncEntry)
	Exit(parent)
}

func TestExit_NilEntryIsNoop(t *testing.T) {
	assert.NotPanics(t, func() { Exit(nil) })
}

func TestLoadRules_RejectsMismatchedRuleType(t *testing.T) {
	err := LoadRules(KindFlow, []*circuitbreakerRuleStub{})
	assert.Error(t, err)
}

type circuitbreakerRuleStub struct{}
