package api

import (
	"fmt"

	"github.com/Sunshine-Research/Sentinel/core/authority"
	"github.com/Sunshine-Research/Sentinel/core/circuitbreaker"
	"github.com/Sunshine-Research/Sentinel/core/flow"
	"github.com/Sunshine-Research/Sentinel/core/hotspot"
	"github.com/Sunshine-Research/Sentinel/core/system"
)

// RuleKind selects which checker's rule set loadRules/getRulesOfResource
// addresses (spec.md §6, "loadRules(kind, list<Rule>)"). Go has no
// covariant Rule supertype shared by the five checkers, so the kind
// dispatches to each package's own concretely-typed rule slice instead
// of a common interface.
type RuleKind int

const (
	KindFlow RuleKind = iota
	KindCircuitBreaker
	KindHotSpot
	KindAuthority
	KindSystem
)

func (k RuleKind) String() string {
	switch k {
	case KindFlow:
		return "flow"
	case KindCircuitBreaker:
		return "circuitBreaker"
	case KindHotSpot:
		return "hotSpot"
	case KindAuthority:
		return "authority"
	case KindSystem:
		return "system"
	default:
		return "unknown"
	}
}

// LoadRules replaces the active rule set for kind. rules must be the
// slice type that kind's package expects ([]*flow.Rule for KindFlow,
// and so on); a mismatched type returns an error and leaves the active
// set untouched.
func LoadRules(kind RuleKind, rules interface{}) error {
	switch kind {
	case KindFlow:
		r, ok := rules.([]*flow.Rule)
		if !ok {
			return fmt.Errorf("sentinel: LoadRules(flow): expected []*flow.Rule, got %T", rules)
		}
		flow.LoadRules(r)
	case KindCircuitBreaker:
		r, ok := rules.([]*circuitbreaker.Rule)
		if !ok {
			return fmt.Errorf("sentinel: LoadRules(circuitBreaker): expected []*circuitbreaker.Rule, got %T", rules)
		}
		circuitbreaker.LoadRules(r)
	case KindHotSpot:
		r, ok := rules.([]*hotspot.Rule)
		if !ok {
			return fmt.Errorf("sentinel: LoadRules(hotSpot): expected []*hotspot.Rule, got %T", rules)
		}
		hotspot.LoadRules(r)
	case KindAuthority:
		r, ok := rules.([]*authority.Rule)
		if !ok {
			return fmt.Errorf("sentinel: LoadRules(authority): expected []*authority.Rule, got %T", rules)
		}
		authority.LoadRules(r)
	case KindSystem:
		r, ok := rules.([]*system.Rule)
		if !ok {
			return fmt.Errorf("sentinel: LoadRules(system): expected []*system.Rule, got %T", rules)
		}
		system.LoadRules(r)
	default:
		return fmt.Errorf("sentinel: LoadRules: unknown kind %v", kind)
	}
	return nil
}

// GetRulesOfResource returns the snapshot of kind's rules currently
// active for name. KindSystem rules are process-wide rather than
// per-resource (spec.md §4.6); name is ignored for that kind.
func GetRulesOfResource(kind RuleKind, name string) (interface{}, error) {
	switch kind {
	case KindFlow:
		return flow.GetRulesOfResource(name), nil
	case KindCircuitBreaker:
		return circuitbreaker.GetRulesOfResource(name), nil
	case KindHotSpot:
		return hotspot.GetRulesOfResource(name), nil
	case KindAuthority:
		return authority.GetRulesOfResource(name), nil
	case KindSystem:
		return system.GetRules(), nil
	default:
		return nil, fmt.Errorf("sentinel: GetRulesOfResource: unknown kind %v", kind)
	}
}

// ClearRules drops every rule of kind, mostly useful for tests that
// need a clean slate between cases.
func ClearRules(kind RuleKind) error {
	switch kind {
	case KindFlow:
		flow.ClearRules()
	case KindCircuitBreaker:
		circuitbreaker.ClearRules()
	case KindHotSpot:
		hotspot.ClearRules()
	case KindAuthority:
		authority.ClearRules()
	case KindSystem:
		system.ClearRules()
	default:
		return fmt.Errorf("sentinel: ClearRules: unknown kind %v", kind)
	}
	return nil
}
