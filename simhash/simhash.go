// Package simhash fingerprints short texts such as product titles so that
// near-identical ones can be found by Hamming distance.
package simhash

import (
	"hash/fnv"
	"math/bits"
	"strings"
	"unicode"
)

// Fingerprint computes a 64-bit SimHash over the given features.
// Each feature is hashed with FNV-64a and contributes one vote per bit.
func Fingerprint(features []string) uint64 {
	if len(features) == 0 {
		return 0
	}

	var vector [64]int
	for _, f := range features {
		h := fnv.New64a()
		h.Write([]byte(f))
		hash := h.Sum64()

		for i := 0; i < 64; i++ {
			if hash&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fingerprint uint64
	for i := 0; i < 64; i++ {
		if vector[i] > 0 {
			fingerprint |= 1 << uint(i)
		}
	}
	return fingerprint
}

// Title fingerprints a product title. Case, punctuation and spacing are
// ignored; word bigrams keep some of the word order.
func Title(title string) uint64 {
	words := Tokens(title)
	features := make([]string, 0, 2*len(words))
	features = append(features, words...)
	for i := 0; i+1 < len(words); i++ {
		features = append(features, words[i]+"_"+words[i+1])
	}
	return Fingerprint(features)
}

// Tokens lowercases s and splits it on anything that is not a letter or digit.
func Tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Distance returns the Hamming distance between two SimHash fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similar returns true if the Hamming distance between two fingerprints
// is less than or equal to the threshold.
func Similar(a, b uint64, threshold int) bool {
	return Distance(a, b) <= threshold
}
