//go:build wormsdebug

package game

func assert(cond bool, msg string) bool {
	if !cond {
		panic("worms: contract violation: " + msg)
	}
	return true
}
