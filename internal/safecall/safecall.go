// Package safecall invokes caller-supplied callbacks without letting panics
// or runtime.Goexit silently swallow the pending work that depends on them.
package safecall

import (
	"github.com/sourcegraph/conc/panics"
)

// Run invokes f and recovers from panics, returning them as errors.
// If f returns normally, Run returns f's error value. If f panics, Run
// returns the recovered panic value as a *panics.ErrRecovered.
func Run(f func() error) error {
	var g Guard
	return g.Run(f)
}

// Guard supervises a single callback invocation.
type Guard struct {
	// OnGoexit runs when the callback terminates via runtime.Goexit.
	// Run never returns in that case, so anything waiting on the callback's
	// outcome must be settled here.
	OnGoexit func()
}

// Run invokes f like the package-level Run. Additionally, when f calls
// runtime.Goexit, the OnGoexit hook runs while the goroutine unwinds.
func (g *Guard) Run(f func() error) (err error) {
	var (
		returned  bool
		recovered panics.Recovered
	)
	defer func() {
		switch {
		case returned:
			return
		case recovered.Value != nil:
			err = recovered.AsError()
		default:
			if g.OnGoexit != nil {
				g.OnGoexit()
			}
		}
	}()
	func() {
		defer func() {
			if v := recover(); v != nil {
				recovered = panics.NewRecovered(2, v)
			}
		}()
		err = f()
		returned = true
	}()
	return
}
