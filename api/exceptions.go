package api

import "github.com/Sunshine-Research/Sentinel/core/base"

// ExceptionClassifier re-exports base.ExceptionClassifier so callers
// configuring exceptionsToIgnore/exceptionsToTrace (spec.md §7) need
// only import api.
type ExceptionClassifier = base.ExceptionClassifier

func NewExceptionClassifier() *ExceptionClassifier {
	return base.NewExceptionClassifier()
}

// SetExceptionClassifier installs the classifier that decides which
// errors returned to Exit count toward resource's exception statistics,
// and therefore toward the circuitbreaker exceptionRatio/exceptionCount
// grades that read those statistics. A nil classifier clears it, which
// traces every error (the default).
func SetExceptionClassifier(resource string, classifier *ExceptionClassifier) {
	base.SetExceptionClassifier(resource, classifier)
}
