package authority

import (
	"sync"

	"github.com/Sunshine-Research/Sentinel/logging"
)

var (
	ruleMu  sync.RWMutex
	ruleMap = make(map[string][]*Rule)
)

func LoadRules(rules []*Rule) {
	next := make(map[string][]*Rule)
	for _, rule := range rules {
		if err := isValid(rule); err != nil {
			logging.Warnf("ignoring invalid authority rule for resource %s: %v", rule.ResourceName(), err)
			continue
		}
		next[rule.Resource] = append(next[rule.Resource], rule)
	}

	ruleMu.Lock()
	ruleMap = next
	ruleMu.Unlock()
}

func rulesFor(resource string) []*Rule {
	ruleMu.RLock()
	defer ruleMu.RUnlock()
	return ruleMap[resource]
}

func GetRulesOfResource(resource string) []*Rule {
	return rulesFor(resource)
}

func ClearRules() {
	ruleMu.Lock()
	ruleMap = make(map[string][]*Rule)
	ruleMu.Unlock()
}
