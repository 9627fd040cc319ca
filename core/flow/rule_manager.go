package flow

import (
	"sync"

	"github.com/Sunshine-Research/Sentinel/logging"
)

type resourceControllers struct {
	controllers  []*TrafficShapingController
	namedOrigins map[string]bool
}

var (
	controllerMu sync.RWMutex
	controllerMap = make(map[string]*resourceControllers)
)

// LoadRules atomically replaces every flow rule the chain consults. Per
// spec.md §3, "any update replaces the active set atomically for a
// given resource" — here it replaces it for every resource at once,
// mirroring how a dynamic config source pushes a full snapshot.
func LoadRules(rules []*Rule) {
	byResource := make(map[string][]*Rule)
	for _, rule := range rules {
		if err := isValid(rule); err != nil {
			logging.Warnf("ignoring invalid flow rule for resource %s: %v", rule.ResourceName(), err)
			continue
		}
		byResource[rule.Resource] = append(byResource[rule.Resource], rule)
	}

	next := make(map[string]*resourceControllers, len(byResource))
	for resource, resRules := range byResource {
		named := make(map[string]bool)
		for _, r := range resRules {
			if r.LimitApp != limitAppDefault && r.LimitApp != limitAppOther && r.LimitApp != "" {
				named[r.LimitApp] = true
			}
		}
		controllers := make([]*TrafficShapingController, 0, len(resRules))
		for _, r := range resRules {
			controllers = append(controllers, newController(r))
		}
		next[resource] = &resourceControllers{controllers: controllers, namedOrigins: named}
	}

	controllerMu.Lock()
	controllerMap = next
	controllerMu.Unlock()
}

func controllersFor(resource string) *resourceControllers {
	controllerMu.RLock()
	defer controllerMu.RUnlock()
	return controllerMap[resource]
}

// GetRulesOfResource returns a snapshot of the rules currently active
// for resource.
func GetRulesOfResource(resource string) []*Rule {
	rc := controllersFor(resource)
	if rc == nil {
		return nil
	}
	rules := make([]*Rule, 0, len(rc.controllers))
	for _, c := range rc.controllers {
		rules = append(rules, c.BoundRule())
	}
	return rules
}

func ClearRules() {
	controllerMu.Lock()
	controllerMap = make(map[string]*resourceControllers)
	controllerMu.Unlock()
}
