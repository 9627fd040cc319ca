package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sunshine-Research/Sentinel/core/base"
)

func TestOverflowChain_NoProtectionAndNoStats(t *testing.T) {
	sc := overflowChain()

	ctx := base.NewEntryContext("overflow-test-ctx", "", nil)
	resource := base.NewResourceWrapper("overflow-test-resource", base.ResTypeCommon, base.Inbound)

	entry, result := sc.Entry(ctx, resource, &base.Input{BatchCount: 1})
	assert.True(t, result.IsPass())
	assert.Nil(t, entry.CurNode)
	assert.Nil(t, entry.ClusterNode)
	assert.Nil(t, entry.OriginNode)

	sc.Exit(entry)
}

func TestOverflowChain_IsASingletonSharedByEveryCaller(t *testing.T) {
	assert.Same(t, overflowChain(), overflowChain())
}
