package cluster

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sunshine-Research/Sentinel/core/base"
)

// Status is a cluster token verdict (spec.md §4.7).
type Status int32

const (
	StatusOK Status = iota
	StatusBlocked
	StatusShouldWait
	StatusNoRuleExists
	StatusTooManyRequest
	StatusFail
	StatusBadRequest
)

// TokenResult is what a TokenService call returns; Remaining and WaitMs
// are only meaningful for StatusOK/StatusShouldWait respectively.
type TokenResult struct {
	Status    Status
	Remaining int64
	WaitMs    int64
}

// TokenService is the cluster token SPI (spec.md §4.7). The core does
// not implement transport: a real deployment wires a gRPC/HTTP client
// here that talks to a token server process; DefaultLocalTokenService
// (server.go) is the in-process reference implementation used when no
// transport is configured, or by the server side of a real deployment.
type TokenService interface {
	RequestToken(flowID string, count uint32, prioritized bool) *TokenResult
	RequestParamToken(flowID string, count uint32, params []interface{}) *TokenResult
}

var activeService TokenService

// SetTokenService installs the TokenService flow rules in cluster mode
// dispatch to. A nil service (the default) makes cluster-mode rules
// fall through to fallbackToLocalWhenFail's local path unconditionally.
func SetTokenService(svc TokenService) { activeService = svc }

func ActiveTokenService() TokenService { return activeService }

// NewFlowID mints an identifier for a cluster-mode rule that was
// configured without one.
func NewFlowID() string { return uuid.NewString() }

// Dispatch implements the client-side disposition table (spec.md §4.7):
// OK passes; SHOULD_WAIT sleeps out its wait and passes; BLOCKED fails;
// anything else — including a nil result, standing in for a transport
// exception — falls back to the local-mode path when the rule asks for
// it, otherwise passes open.
func Dispatch(result *TokenResult, fallbackToLocal bool, localCheck func() *base.TokenResult) *base.TokenResult {
	if result == nil {
		return fallback(fallbackToLocal, localCheck)
	}
	switch result.Status {
	case StatusOK:
		return base.ResultPass()
	case StatusShouldWait:
		if result.WaitMs > 0 {
			time.Sleep(time.Duration(result.WaitMs) * time.Millisecond)
		}
		return base.ResultPass()
	case StatusBlocked:
		return base.ResultBlocked(base.NewBlockErrorWithCause(
			base.BlockTypeFlow, "", "cluster flow blocked", nil, result))
	default:
		return fallback(fallbackToLocal, localCheck)
	}
}

func fallback(fallbackToLocal bool, localCheck func() *base.TokenResult) *base.TokenResult {
	if fallbackToLocal && localCheck != nil {
		return localCheck()
	}
	return base.ResultPass()
}
