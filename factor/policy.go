// SPDX-License-Identifier: MIT

package factor

import "math"

// Reason labels why a refactorization happened. The values double as the
// "reason" label of the refactorization counter.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonInitial   Reason = "initial"
	ReasonManual    Reason = "manual"
	ReasonEveryK    Reason = "every_k"
	ReasonDrift     Reason = "drift"
	ReasonCondition Reason = "condition"
)

// Stats is the bookkeeping a Basis exposes to its Policy.
type Stats struct {
	Updates          int     // elementary factors since the last refactorization
	Refactorizations int     // total, including the initial one
	Drift            float64 // last measured ‖B·FTran(p) - p‖∞; 0 when unmeasured
	Cond             float64 // condition estimate of the base factor; 0 when unknown
	LastReason       Reason
}

// Policy decides, after each update, whether the chain is folded back into a
// single base factor.
type Policy interface {
	Refactor(s Stats) (bool, Reason)
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(s Stats) (bool, Reason)

// Refactor calls fn(s).
func (fn PolicyFunc) Refactor(s Stats) (bool, Reason) { return fn(s) }

// EveryK refactorizes once k updates have accumulated. Panics if k <= 0.
func EveryK(k int) Policy {
	if k <= 0 {
		panic("factor: EveryK: k must be > 0")
	}

	return PolicyFunc(func(s Stats) (bool, Reason) {
		if s.Updates >= k {
			return true, ReasonEveryK
		}

		return false, ReasonNone
	})
}

// DriftAbove refactorizes when the measured drift exceeds tol.
// Drift is only measured under WithDriftCheck.
func DriftAbove(tol float64) Policy {
	return PolicyFunc(func(s Stats) (bool, Reason) {
		if s.Drift > tol || math.IsNaN(s.Drift) {
			return true, ReasonDrift
		}

		return false, ReasonNone
	})
}

// CondAbove refactorizes when the base factor's condition estimate exceeds c
// and at least one update has been applied since.
func CondAbove(c float64) Policy {
	return PolicyFunc(func(s Stats) (bool, Reason) {
		if s.Updates > 0 && s.Cond > c {
			return true, ReasonCondition
		}

		return false, ReasonNone
	})
}

// AnyOf fires with the reason of the first policy that fires.
func AnyOf(ps ...Policy) Policy {
	return PolicyFunc(func(s Stats) (bool, Reason) {
		for _, p := range ps {
			if ok, r := p.Refactor(s); ok {
				return true, r
			}
		}

		return false, ReasonNone
	})
}

// Never keeps the chain growing until Refactor is called explicitly.
func Never() Policy {
	return PolicyFunc(func(Stats) (bool, Reason) { return false, ReasonNone })
}
