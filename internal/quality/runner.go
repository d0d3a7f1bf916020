package quality

import (
	"sync"
)

// Runner runs every checker concurrently against one subject.
type Runner struct {
	Checkers []Checker
}

func NewRunner(checkers []Checker) *Runner {
	return &Runner{
		Checkers: checkers,
	}
}

// DefaultRunner runs the length, format, fact and overlap checks.
func DefaultRunner() *Runner {
	return NewRunner([]Checker{
		NewLengthChecker(),
		NewFormatChecker(),
		NewFactChecker(),
		NewOverlapChecker(),
	})
}

// Run returns one result per checker, in checker order.
func (r *Runner) Run(subject Subject) []Result {
	results := make([]Result, len(r.Checkers))
	var wg sync.WaitGroup

	for i, checker := range r.Checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = checker.Check(subject)
		}()
	}

	wg.Wait()
	return results
}
