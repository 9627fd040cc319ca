package authority

import (
	"testing"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/stretchr/testify/assert"
)

func newTestEntry(resourceName, origin string) (*base.EntryContext, *base.Entry) {
	resource := base.NewResourceWrapper(resourceName, base.ResTypeCommon, base.Inbound)
	ctx := base.NewEntryContext("ctx-auth", origin, nil)
	entry := base.NewEntry(ctx, resource, nil)
	return ctx, entry
}

func TestSlot_BlackListBlocksMatch(t *testing.T) {
	defer ClearRules()
	LoadRules([]*Rule{{Resource: "res-auth-1", Strategy: StrategyBlack, LimitApp: "bad-caller,other"}})

	ctx, entry := newTestEntry("res-auth-1", "bad-caller")
	assert.True(t, (&Slot{}).Check(ctx, entry).IsBlocked())
}

func TestSlot_WhiteListBlocksNonMatch(t *testing.T) {
	defer ClearRules()
	LoadRules([]*Rule{{Resource: "res-auth-2", Strategy: StrategyWhite, LimitApp: "good-caller"}})

	ctx, entry := newTestEntry("res-auth-2", "unknown-caller")
	assert.True(t, (&Slot{}).Check(ctx, entry).IsBlocked())

	ctx2, entry2 := newTestEntry("res-auth-2", "good-caller")
	assert.True(t, (&Slot{}).Check(ctx2, entry2).IsPass())
}

func TestSlot_EmptyOriginPasses(t *testing.T) {
	defer ClearRules()
	LoadRules([]*Rule{{Resource: "res-auth-3", Strategy: StrategyWhite, LimitApp: "good-caller"}})

	ctx, entry := newTestEntry("res-auth-3", "")
	assert.True(t, (&Slot{}).Check(ctx, entry).IsPass())
}
