package system

import (
	"sync"

	"github.com/Sunshine-Research/Sentinel/logging"
)

var (
	ruleMu sync.RWMutex
	// ruleMap holds at most one rule per gauge; loading a second rule for
	// the same MetricType replaces the first, since only one threshold per
	// gauge is meaningful.
	ruleMap = make(map[MetricType]*Rule)
)

func LoadRules(rules []*Rule) {
	next := make(map[MetricType]*Rule, len(rules))
	for _, rule := range rules {
		if err := isValid(rule); err != nil {
			logging.Warnf("ignoring invalid system rule: %v", err)
			continue
		}
		next[rule.MetricType] = rule
	}

	ruleMu.Lock()
	ruleMap = next
	ruleMu.Unlock()
}

func ruleFor(metricType MetricType) *Rule {
	ruleMu.RLock()
	defer ruleMu.RUnlock()
	return ruleMap[metricType]
}

func GetRules() []*Rule {
	ruleMu.RLock()
	defer ruleMu.RUnlock()
	rules := make([]*Rule, 0, len(ruleMap))
	for _, r := range ruleMap {
		rules = append(rules, r)
	}
	return rules
}

func ClearRules() {
	ruleMu.Lock()
	ruleMap = make(map[MetricType]*Rule)
	ruleMu.Unlock()
}
