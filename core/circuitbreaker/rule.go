package circuitbreaker

import (
	"encoding/json"
	"fmt"
)

// Grade selects which signal a degrade rule trips on (spec.md §3,
// "DegradeRule").
type Grade int32

const (
	GradeAvgRT Grade = iota
	GradeExceptionRatio
	GradeExceptionCount
)

func (g Grade) String() string {
	switch g {
	case GradeAvgRT:
		return "avgRT"
	case GradeExceptionRatio:
		return "exceptionRatio"
	case GradeExceptionCount:
		return "exceptionCount"
	default:
		return "undefined"
	}
}

// Rule is a circuit-breaker rule (spec.md §4.4). TimeWindowSec is how
// long the breaker stays open once tripped before probation resumes.
type Rule struct {
	ID            string  `json:"id,omitempty"`
	Resource      string  `json:"resource"`
	Grade         Grade   `json:"grade"`
	Threshold     float64 `json:"threshold"`
	TimeWindowSec uint32  `json:"timeWindowSec"`
}

func (r *Rule) ResourceName() string { return r.Resource }

func (r *Rule) String() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf("Rule{Resource=%s, Grade=%s, Threshold=%.2f, TimeWindowSec=%d}",
			r.Resource, r.Grade, r.Threshold, r.TimeWindowSec)
	}
	return string(b)
}

func isValid(rule *Rule) error {
	if rule == nil {
		return fmt.Errorf("nil degrade rule")
	}
	if rule.Resource == "" {
		return fmt.Errorf("empty resource")
	}
	if rule.TimeWindowSec == 0 {
		return fmt.Errorf("timeWindowSec must be > 0")
	}
	return nil
}
