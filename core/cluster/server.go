package cluster

import (
	"fmt"
	"sync"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/stat/slidingwindow"
)

// defaultGlobalLimitQPS is GlobalRequestLimiter's safety cap when a
// deployment does not override it (spec.md §4.7, "default 30k QPS").
const defaultGlobalLimitQPS = 30000

// ServerRule is the server-side counterpart to a cluster-mode flow
// rule: either an explicit global threshold, or a per-node threshold
// scaled by the connected node count (spec.md §4.7, "compute global
// threshold as either explicitly global or perNodeCount·connectedNodes").
type ServerRule struct {
	FlowID          string
	GlobalThreshold float64
	PerNodeCount    float64
	ConnectedNodes  int32
	ExceedCount     float64
	MaxOccupyRatio  float64
}

func (r *ServerRule) threshold() float64 {
	if r.GlobalThreshold > 0 {
		return r.GlobalThreshold
	}
	return r.PerNodeCount * float64(r.ConnectedNodes)
}

func (r *ServerRule) exceedCount() float64 {
	if r.ExceedCount <= 0 {
		return 1
	}
	return r.ExceedCount
}

// DefaultLocalTokenService is the in-process reference TokenService
// (spec.md §4.7, server-side sketch): per-flowId window stats, a global
// safety cap ahead of any rule evaluation, and bounded future-capacity
// reservation for prioritized callers.
type DefaultLocalTokenService struct {
	mu      sync.RWMutex
	rules   map[string]*ServerRule
	metrics map[string]*slidingwindow.Metric

	limiter *globalRequestLimiter
}

func NewDefaultLocalTokenService(globalLimitQPS float64) *DefaultLocalTokenService {
	if globalLimitQPS <= 0 {
		globalLimitQPS = defaultGlobalLimitQPS
	}
	return &DefaultLocalTokenService{
		rules:   make(map[string]*ServerRule),
		metrics: make(map[string]*slidingwindow.Metric),
		limiter: newGlobalRequestLimiter(globalLimitQPS),
	}
}

func (s *DefaultLocalTokenService) LoadServerRules(rules []*ServerRule) {
	next := make(map[string]*ServerRule, len(rules))
	for _, r := range rules {
		next[r.FlowID] = r
	}
	s.mu.Lock()
	s.rules = next
	s.mu.Unlock()
}

func (s *DefaultLocalTokenService) metricFor(key string) *slidingwindow.Metric {
	s.mu.RLock()
	m, ok := s.metrics[key]
	s.mu.RUnlock()
	if ok {
		return m
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok = s.metrics[key]; ok {
		return m
	}
	m, _ = slidingwindow.NewMetric(20, 1000)
	s.metrics[key] = m
	return m
}

func (s *DefaultLocalTokenService) RequestToken(flowID string, count uint32, prioritized bool) *TokenResult {
	if !s.limiter.tryAcquire(int64(count)) {
		return &TokenResult{Status: StatusTooManyRequest}
	}

	s.mu.RLock()
	rule, ok := s.rules[flowID]
	s.mu.RUnlock()
	if !ok {
		return &TokenResult{Status: StatusNoRuleExists}
	}
	if count == 0 {
		return &TokenResult{Status: StatusBadRequest}
	}

	metric := s.metricFor(flowID)
	return s.admit(metric, rule, count, prioritized)
}

func (s *DefaultLocalTokenService) RequestParamToken(flowID string, count uint32, params []interface{}) *TokenResult {
	s.mu.RLock()
	rule, ok := s.rules[flowID]
	s.mu.RUnlock()
	if !ok {
		return &TokenResult{Status: StatusNoRuleExists}
	}
	if !s.limiter.tryAcquire(int64(count)) {
		return &TokenResult{Status: StatusTooManyRequest}
	}

	key := fmt.Sprintf("%s\x00%v", flowID, params)
	metric := s.metricFor(key)
	return s.admit(metric, rule, count, false)
}

func (s *DefaultLocalTokenService) admit(metric *slidingwindow.Metric, rule *ServerRule, count uint32, prioritized bool) *TokenResult {
	threshold := rule.threshold()
	latestQps := metric.GetQPS(base.MetricEventPass)

	if threshold*rule.exceedCount()-latestQps-float64(count) >= 0 {
		metric.AddCount(base.MetricEventPass, int64(count))
		remaining := int64(threshold - latestQps - float64(count))
		if remaining < 0 {
			remaining = 0
		}
		return &TokenResult{Status: StatusOK, Remaining: remaining}
	}

	if prioritized && rule.MaxOccupyRatio > 0 {
		occupied := metric.GetSum(base.MetricEventOccupiedPass)
		if float64(occupied) < threshold*rule.MaxOccupyRatio {
			metric.AddCount(base.MetricEventOccupiedPass, int64(count))
			return &TokenResult{Status: StatusShouldWait, WaitMs: int64(metric.BucketLengthMs())}
		}
	}

	return &TokenResult{Status: StatusBlocked}
}
