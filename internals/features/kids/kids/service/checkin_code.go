package service

import (
	"crypto/rand"
	"crypto/subtle"
	"io"
	"strings"
)

// CodeAlphabet leaves out 0/O and 1/I/L so codes read back unambiguously.
const CodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const CodeLength = 6

// GenerateCode draws CodeLength symbols from src (crypto/rand when nil),
// rejecting bytes that would bias the distribution.
func GenerateCode(src io.Reader) (string, error) {
	if src == nil {
		src = rand.Reader
	}
	n := byte(len(CodeAlphabet))
	limit := 256 - (256 % int(n))
	out := make([]byte, 0, CodeLength)
	buf := make([]byte, CodeLength*2)
	for len(out) < CodeLength {
		if _, err := io.ReadFull(src, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, CodeAlphabet[b%n])
			if len(out) == CodeLength {
				break
			}
		}
	}
	return string(out), nil
}

func NormalizeCode(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

// CodeMatches compares in constant time after normalizing the input.
func CodeMatches(expected, got string) bool {
	g := NormalizeCode(got)
	if len(g) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(g)) == 1
}
