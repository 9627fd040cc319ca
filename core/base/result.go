package base

import (
	"fmt"
	"time"
)

// BlockType identifies which checker rejected a call (spec.md §6, "Faults surfaced").
type BlockType uint8

const (
	BlockTypeUnknown BlockType = iota
	BlockTypeFlow
	BlockTypeAuthority
	BlockTypeCircuitBreaking
	BlockTypeSystemFlow
	BlockTypeHotSpotParamFlow
)

func (t BlockType) String() string {
	switch t {
	case BlockTypeFlow:
		return "flow"
	case BlockTypeAuthority:
		return "authority"
	case BlockTypeCircuitBreaking:
		return "degrade"
	case BlockTypeSystemFlow:
		return "system"
	case BlockTypeHotSpotParamFlow:
		return "paramFlow"
	default:
		return "unknown"
	}
}

// BlockError is the typed fault carried instead of an Entry when a rule
// denies admission (spec.md §6). It implements error.
type BlockError struct {
	BlockType      BlockType
	ResourceName   string
	BlockMsg       string
	Rule           SentinelRule
	TriggeredParam interface{}
}

func NewBlockError(blockType BlockType, resourceName string) *BlockError {
	return &BlockError{BlockType: blockType, ResourceName: resourceName}
}

func NewBlockErrorWithCause(blockType BlockType, resourceName, msg string, rule SentinelRule, triggeredParam interface{}) *BlockError {
	return &BlockError{
		BlockType:      blockType,
		ResourceName:   resourceName,
		BlockMsg:       msg,
		Rule:           rule,
		TriggeredParam: triggeredParam,
	}
}

func (e *BlockError) Error() string {
	if e == nil {
		return "<nil block error>"
	}
	if e.BlockMsg == "" {
		return fmt.Sprintf("SentinelBlockError: resource=%s, blockType=%s", e.ResourceName, e.BlockType)
	}
	return fmt.Sprintf("SentinelBlockError: resource=%s, blockType=%s, msg=%s", e.ResourceName, e.BlockType, e.BlockMsg)
}

// TokenResultStatus is the outcome of a single RuleCheckSlot evaluation
// or of the overall SlotChain.Entry call (spec.md §4.2/§7).
type TokenResultStatus uint8

const (
	ResultStatusPass TokenResultStatus = iota
	ResultStatusBlocked
	ResultStatusShouldWait
)

// TokenResult is returned by every rule check. A nil *TokenResult, and a
// non-nil one with IsBlocked() == false, both mean "pass" (spec.md §4.2:
// "If the selected node is null, the rule passes").
type TokenResult struct {
	status      TokenResultStatus
	blockErr    *BlockError
	nanosToWait time.Duration
}

func ResultPass() *TokenResult {
	return &TokenResult{status: ResultStatusPass}
}

func ResultBlocked(blockErr *BlockError) *TokenResult {
	return &TokenResult{status: ResultStatusBlocked, blockErr: blockErr}
}

// ResultShouldWait models the priority-wait signal (spec.md §7, fault
// class 2): it never escapes Entry, but carries the wait duration for
// the statistic slot to act on.
func ResultShouldWait(wait time.Duration) *TokenResult {
	return &TokenResult{status: ResultStatusShouldWait, nanosToWait: wait}
}

func (r *TokenResult) IsPass() bool {
	return r == nil || r.status == ResultStatusPass
}

func (r *TokenResult) IsBlocked() bool {
	return r != nil && r.status == ResultStatusBlocked
}

func (r *TokenResult) IsShouldWait() bool {
	return r != nil && r.status == ResultStatusShouldWait
}

func (r *TokenResult) Status() TokenResultStatus {
	if r == nil {
		return ResultStatusPass
	}
	return r.status
}

func (r *TokenResult) BlockError() *BlockError {
	if r == nil {
		return nil
	}
	return r.blockErr
}

func (r *TokenResult) NanosToWait() time.Duration {
	if r == nil {
		return 0
	}
	return r.nanosToWait
}

func (r *TokenResult) String() string {
	if r == nil {
		return "TokenResult{pass}"
	}
	return fmt.Sprintf("TokenResult{status=%d, blockErr=%v, wait=%s}", r.status, r.blockErr, r.nanosToWait)
}
