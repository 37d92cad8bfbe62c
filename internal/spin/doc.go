// Package spin implements the wheel animation as a pure step function.
//
// An Animator starts a Spin from the current wheel rotation. The caller drives
// the spin forward with Advance(delta) from whatever clock it owns (a frame
// ticker in production, fixed deltas in tests). Once Advance reports done, the
// final rotation is mapped to the entry under the pointer with SelectIndex.
package spin
