package circuitbreaker

import (
	"sync"

	"github.com/Sunshine-Research/Sentinel/core/base"
	"github.com/Sunshine-Research/Sentinel/core/stat"
	"github.com/Sunshine-Research/Sentinel/logging"
)

var (
	breakerMu  sync.RWMutex
	breakerMap = make(map[string][]*Breaker)
)

// LoadRules atomically replaces every degrade rule, mirroring the
// full-replace approach core/flow takes for the same reason: nothing in
// this rule shape needs per-rule stat-interval reuse across reloads.
func LoadRules(rules []*Rule) {
	next := make(map[string][]*Breaker)
	for _, rule := range rules {
		if err := isValid(rule); err != nil {
			logging.Warnf("ignoring invalid degrade rule for resource %s: %v", rule.ResourceName(), err)
			continue
		}
		node := stat.GetOrCreateClusterNode(rule.Resource, base.ResTypeCommon)
		next[rule.Resource] = append(next[rule.Resource], NewBreaker(rule, node))
	}

	breakerMu.Lock()
	breakerMap = next
	breakerMu.Unlock()
}

func breakersFor(resource string) []*Breaker {
	breakerMu.RLock()
	defer breakerMu.RUnlock()
	return breakerMap[resource]
}

func GetRulesOfResource(resource string) []*Rule {
	breakers := breakersFor(resource)
	rules := make([]*Rule, 0, len(breakers))
	for _, b := range breakers {
		rules = append(rules, b.BoundRule())
	}
	return rules
}

func ClearRules() {
	breakerMu.Lock()
	breakerMap = make(map[string][]*Breaker)
	breakerMu.Unlock()
}
