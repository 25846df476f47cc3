//go:build !unix

package core

func isSpawnFailure(err error) bool {
	return false
}
