// Package common holds small helpers shared across the client packages.
package common

// WipeByteArray overwrites b with zeros. It is used to remove passwords
// from memory after they have been sent to the backend. A nil slice is a
// no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
