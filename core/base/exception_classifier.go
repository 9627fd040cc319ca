package base

import "sync"

// ExceptionClassifier decides whether an error observed on Entry.Exit
// counts toward a resource's exception statistics (spec.md §7,
// "exceptionsToIgnore"/"exceptionsToTrace"). An ignore match always
// excludes the error; with no ignore match, a non-empty trace list
// requires a match to include it, and an empty trace list traces every
// non-ignored error — mirroring the original's default-trace-all,
// narrow-with-exceptionsToTrace, exclude-with-exceptionsToIgnore
// contract without requiring the original's AOP annotation wrapper.
type ExceptionClassifier struct {
	ignore []func(error) bool
	trace  []func(error) bool
}

func NewExceptionClassifier() *ExceptionClassifier {
	return &ExceptionClassifier{}
}

// Ignore adds a predicate whose match excludes an error from exception
// statistics regardless of any trace predicate.
func (c *ExceptionClassifier) Ignore(pred func(error) bool) *ExceptionClassifier {
	c.ignore = append(c.ignore, pred)
	return c
}

// Trace adds a predicate that, once any Trace predicate is registered,
// is required (along with the others) for an error to count.
func (c *ExceptionClassifier) Trace(pred func(error) bool) *ExceptionClassifier {
	c.trace = append(c.trace, pred)
	return c
}

// Traceable reports whether err should count toward the resource's
// exception statistics. A nil classifier traces every non-nil error,
// which is the same as a classifier with no ignore/trace predicates.
func (c *ExceptionClassifier) Traceable(err error) bool {
	if err == nil {
		return false
	}
	if c == nil {
		return true
	}
	for _, p := range c.ignore {
		if p(err) {
			return false
		}
	}
	if len(c.trace) == 0 {
		return true
	}
	for _, p := range c.trace {
		if p(err) {
			return true
		}
	}
	return false
}

var (
	classifierMu sync.RWMutex
	classifiers  = make(map[string]*ExceptionClassifier)
)

// SetExceptionClassifier installs the classifier consulted for resource
// when statistics record a completed call's error, or clears it when
// classifier is nil (spec.md §7).
func SetExceptionClassifier(resource string, classifier *ExceptionClassifier) {
	classifierMu.Lock()
	defer classifierMu.Unlock()
	if classifier == nil {
		delete(classifiers, resource)
		return
	}
	classifiers[resource] = classifier
}

// ExceptionClassifierFor returns resource's installed classifier, or
// nil if none was set.
func ExceptionClassifierFor(resource string) *ExceptionClassifier {
	classifierMu.RLock()
	defer classifierMu.RUnlock()
	return classifiers[resource]
}

// ClearExceptionClassifiersForTest drops every installed classifier.
func ClearExceptionClassifiersForTest() {
	classifierMu.Lock()
	classifiers = make(map[string]*ExceptionClassifier)
	classifierMu.Unlock()
}
