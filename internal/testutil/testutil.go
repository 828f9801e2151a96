package testutil

import (
	"math/rand"
	"sort"
)

// HasSubsequenceFold reports whether pattern is a subsequence of input when
// ASCII letters in both are folded to lowercase. It is the reference oracle
// for automaton tests and scans input once per pattern byte.
func HasSubsequenceFold(input, pattern []byte) bool {
	for _, p := range pattern {
		p = lower(p)
		i := 0
		for i < len(input) && lower(input[i]) != p {
			i++
		}
		if i == len(input) {
			return false
		}
		input = input[i+1:]
	}
	return true
}

func lower(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// SampleTerms returns a small sorted term list resembling file paths.
func SampleTerms() []string {
	terms := []string{
		"Makefile",
		"README.md",
		"cmd/server/main.go",
		"docs/SQL/Calls.md",
		"internal/automaton/automaton.go",
		"internal/automaton/prefix.go",
		"internal/automaton/subsequence.go",
		"internal/termdict/dict.go",
		"internal/termdict/search.go",
		"sql/query_alias.sql",
		"squeal.c",
		"src/SquirrelClient.java",
		"squid/acl",
		"static/app.css",
	}
	sort.Strings(terms)
	return terms
}

// RandomASCII returns n bytes drawn from alphabet using r.
func RandomASCII(r *rand.Rand, alphabet string, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[r.Intn(len(alphabet))]
	}
	return out
}

// RandomTerms returns count distinct random terms of length 1..maxLen, sorted.
func RandomTerms(r *rand.Rand, alphabet string, count, maxLen int) []string {
	seen := make(map[string]bool, count)
	terms := make([]string, 0, count)
	for attempts := 0; len(terms) < count && attempts < count*10; attempts++ {
		t := string(RandomASCII(r, alphabet, 1+r.Intn(maxLen)))
		if seen[t] {
			continue
		}
		seen[t] = true
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}
