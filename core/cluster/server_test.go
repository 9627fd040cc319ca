package cluster

import (
	"testing"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/stretchr/testify/assert"
)

func TestDefaultLocalTokenService_AdmitsUnderThreshold(t *testing.T) {
	svc := NewDefaultLocalTokenService(1000)
	svc.LoadServerRules([]*ServerRule{{FlowID: "flow-a", GlobalThreshold: 10}})

	result := svc.RequestToken("flow-a", 1, false)
	assert.Equal(t, StatusOK, result.Status)
}

func TestDefaultLocalTokenService_NoRuleExists(t *testing.T) {
	svc := NewDefaultLocalTokenService(1000)
	result := svc.RequestToken("missing-flow", 1, false)
	assert.Equal(t, StatusNoRuleExists, result.Status)
}

func TestDefaultLocalTokenService_BlocksOverThreshold(t *testing.T) {
	svc := NewDefaultLocalTokenService(1000)
	svc.LoadServerRules([]*ServerRule{{FlowID: "flow-b", GlobalThreshold: 2}})

	var blocked bool
	for i := 0; i < 5; i++ {
		if svc.RequestToken("flow-b", 1, false).Status == StatusBlocked {
			blocked = true
		}
	}
	assert.True(t, blocked)
}

func TestGlobalRequestLimiter_CapsAheadOfRules(t *testing.T) {
	svc := NewDefaultLocalTokenService(1)
	svc.LoadServerRules([]*ServerRule{{FlowID: "flow-c", GlobalThreshold: 1000}})

	var tooMany bool
	for i := 0; i < 5; i++ {
		if svc.RequestToken("flow-c", 1, false).Status == StatusTooManyRequest {
			tooMany = true
		}
	}
	assert.True(t, tooMany)
}

func TestDispatch_ShouldWaitSleepsThenPasses(t *testing.T) {
	result := Dispatch(&TokenResult{Status: StatusShouldWait, WaitMs: 1}, false, nil)
	assert.True(t, result.IsPass())
}

func TestDispatch_NilResultFallsBackWhenConfigured(t *testing.T) {
	called := false
	local := func() *base.TokenResult {
		called = true
		return base.ResultBlocked(nil)
	}

	result := Dispatch(nil, true, local)
	assert.True(t, called)
	assert.True(t, result.IsBlocked())
}

func TestDispatch_NilResultPassesWithoutFallback(t *testing.T) {
	result := Dispatch(nil, false, nil)
	assert.True(t, result.IsPass())
}
