package test

import (
	"math/rand/v2"
)

const (
	textAlphabet = "abcdefghijklmnopqrstuvwxyz ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	hexAlphabet  = "0123456789abcdef"
)

// RandomText returns n pseudo-random letters with no leading or trailing space.
func RandomText(n int) string {
	if n <= 0 {
		n = 1
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = textAlphabet[rand.IntN(len(textAlphabet))]
	}
	buf[0], buf[n-1] = 'x', 'y'
	return string(buf)
}

// RandomObjectID returns a 24 character hex id shaped like a marketplace document id.
func RandomObjectID() string {
	buf := make([]byte, 24)
	for i := range buf {
		buf[i] = hexAlphabet[rand.IntN(len(hexAlphabet))]
	}
	return string(buf)
}
