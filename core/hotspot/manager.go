package hotspot

import (
	"sync"

	"github.com/Sunshine-Research/Sentinel/logging"
)

var (
	controllerMu  sync.RWMutex
	controllerMap = make(map[string][]*Controller)
)

// LoadRules atomically replaces every hot-parameter rule (spec.md §6,
// "loadRules replaces the active set for that kind").
func LoadRules(rules []*Rule) {
	next := make(map[string][]*Controller)
	for _, rule := range rules {
		if err := isValid(rule); err != nil {
			logging.Warnf("ignoring invalid hotspot rule for resource %s: %v", rule.ResourceName(), err)
			continue
		}
		next[rule.Resource] = append(next[rule.Resource], newController(rule))
	}

	controllerMu.Lock()
	controllerMap = next
	controllerMu.Unlock()
}

func controllersFor(resource string) []*Controller {
	controllerMu.RLock()
	defer controllerMu.RUnlock()
	return controllerMap[resource]
}

func GetRulesOfResource(resource string) []*Rule {
	controllers := controllersFor(resource)
	rules := make([]*Rule, 0, len(controllers))
	for _, c := range controllers {
		rules = append(rules, c.BoundRule())
	}
	return rules
}

func ClearRules() {
	controllerMu.Lock()
	controllerMap = make(map[string][]*Controller)
	controllerMu.Unlock()
}
