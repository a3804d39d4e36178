// Package arith defines Field, the small arithmetic capability trait that lets the
// substitution engine run one elimination loop over several scalar representations.
//
// Implementations:
//
//   - Float64 and Complex128: hardware doubles with an absolute pivot tolerance.
//   - Rational: exact *big.Rat arithmetic; only an exact zero is negligible.
//   - BigFloat: *big.Float at a fixed precision with its own tolerance.
package arith
