// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package treediff

import (
	"sort"
	"strings"
)

// Container is a File that also holds named members (spec.md §4.D): an
// archive, a compressed single-stream file, or a directory. Open/Extract
// follow the same scoped-acquisition shape as File.Acquire, but are keyed
// by a shared TempScope so that N members extracted during one recursive
// comparison share a single temp directory and release it once.
type Container interface {
	// Source is the Container's own File identity (its name, magic type,
	// and Acquire-able path), so a Container can be diffed like any other
	// File when its children turn out to be identical.
	Source() File

	// MemberNames lists this container's direct children in the stable
	// order the format produces them (archive member order, or sorted
	// directory entries).
	MemberNames() ([]string, error)

	// Member returns the named child as a File, which may itself be a
	// Container, already Specialized.
	Member(name string, specialize SpecializeFunc) (File, error)

	// Open acquires whatever backing resource member extraction requires
	// (e.g. unpacking the archive into a scratch directory). Nested Opens
	// are reference counted; the returned release must be called exactly
	// once per Open.
	Open() (release func(), err error)

	// ExtractMember materializes one member's bytes to an on-disk path
	// inside the container's open scope. Open must have been called first.
	ExtractMember(name string) (path string, err error)
}

// Pairing is a single name lined up across two containers' member lists,
// produced by PairMembers (spec.md §4.D). Exactly one of Name1/Name2 may be
// empty, meaning that side has no matching member and should compare
// against a NonExistingFile sentinel.
type Pairing struct {
	Name1, Name2 string
}

// PairMembers aligns two member-name lists into ordered pairs using the
// three-pass strategy: exact name match, then match by name with a common
// compression suffix stripped (so "foo.gz" pairs with "foo" or "foo.xz"),
// then (if cfg.FuzzyThreshold > 0) fuzzy pairing of what's left by edit
// distance. Anything still unpaired after all three passes is emitted
// against the empty string, i.e. a NonExistingFile partner.
//
// This generalizes the two-pass "seen then leftover" gather in
// opencoff-go-fio's cmp.go into a strictly ordered, three-pass algorithm;
// unlike that implementation, ties are broken deterministically by
// existing list order so PairMembers never depends on map iteration order.
func PairMembers(names1, names2 []string, cfg Config) []Pairing {
	used1 := make(map[string]bool, len(names1))
	used2 := make(map[string]bool, len(names2))
	index2 := make(map[string]int, len(names2))
	for i, n := range names2 {
		if _, ok := index2[n]; !ok {
			index2[n] = i
		}
	}

	var pairs []Pairing

	// Pass 1: exact name match, in names1's order.
	for _, n1 := range names1 {
		if used1[n1] {
			continue
		}
		if i2, ok := index2[n1]; ok && !used2[names2[i2]] {
			pairs = append(pairs, Pairing{Name1: n1, Name2: names2[i2]})
			used1[n1] = true
			used2[names2[i2]] = true
		}
	}

	// Pass 2: match by compression-suffix-stripped stem.
	stem2 := make(map[string]int, len(names2))
	for i, n := range names2 {
		if used2[n] {
			continue
		}
		s := stripCompressionSuffix(n)
		if _, ok := stem2[s]; !ok {
			stem2[s] = i
		}
	}
	for _, n1 := range names1 {
		if used1[n1] {
			continue
		}
		s := stripCompressionSuffix(n1)
		if i2, ok := stem2[s]; ok && !used2[names2[i2]] {
			pairs = append(pairs, Pairing{Name1: n1, Name2: names2[i2]})
			used1[n1] = true
			used2[names2[i2]] = true
		}
	}

	// Pass 3: fuzzy pairing by edit distance, greedy best-match-first.
	if cfg.FuzzyThreshold > 0 {
		pairs = append(pairs, fuzzyPair(names1, names2, used1, used2, cfg.FuzzyThreshold)...)
	}

	// Leftovers: unmatched members on either side, each against no partner.
	for _, n1 := range names1 {
		if !used1[n1] {
			pairs = append(pairs, Pairing{Name1: n1})
			used1[n1] = true
		}
	}
	for _, n2 := range names2 {
		if !used2[n2] {
			pairs = append(pairs, Pairing{Name2: n2})
			used2[n2] = true
		}
	}

	return pairs
}

var compressionSuffixes = []string{".gz", ".xz", ".bz2", ".lzma", ".zst"}

func stripCompressionSuffix(name string) string {
	for _, suf := range compressionSuffixes {
		if strings.HasSuffix(name, suf) {
			return strings.TrimSuffix(name, suf)
		}
	}
	return name
}

func fuzzyPair(names1, names2 []string, used1, used2 map[string]bool, threshold int) []Pairing {
	type candidate struct {
		n1, n2 string
		dist   int
	}
	var candidates []candidate
	for _, n1 := range names1 {
		if used1[n1] {
			continue
		}
		for _, n2 := range names2 {
			if used2[n2] {
				continue
			}
			d := levenshtein(n1, n2)
			if d <= threshold {
				candidates = append(candidates, candidate{n1, n2, d})
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })

	var pairs []Pairing
	for _, c := range candidates {
		if used1[c.n1] || used2[c.n2] {
			continue
		}
		pairs = append(pairs, Pairing{Name1: c.n1, Name2: c.n2})
		used1[c.n1] = true
		used2[c.n2] = true
	}
	return pairs
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}

// CompareContainers drives the recursive member-pairing comparison shared
// by every multi-member Container comparator (tar, zip, ar, directory):
// pair up names, resolve each side to a File (or NonExistingFile), let
// specialize pick each member's Comparator, and recurse via Compare. The
// returned slice is ready to hang directly off a Difference.Details.
//
// An asymmetric pairing (one side empty) still recurses against the
// /dev/null sentinel either way, but when cfg.NewFile is false — the
// default — the resulting Difference is marked Fatal (spec.md §4.D): the
// container itself, not just the missing member, counts as differing for
// any purpose that distinguishes a fatal mismatch from an ordinary nested
// one. cfg.NewFile true reports the same Difference without that
// escalation.
func CompareContainers(c1, c2 Container, cfg Config, specialize SpecializeFunc) ([]*Difference, error) {
	names1, err := c1.MemberNames()
	if err != nil {
		return nil, err
	}
	names2, err := c2.MemberNames()
	if err != nil {
		return nil, err
	}

	var details []*Difference
	for _, p := range PairMembers(names1, names2, cfg) {
		f1, err := memberOrSentinel(c1, p.Name1, specialize)
		if err != nil {
			return nil, err
		}
		f2, err := memberOrSentinel(c2, p.Name2, specialize)
		if err != nil {
			return nil, err
		}

		cmp1, ok1 := f1.(Comparator)
		cmp2, ok2 := f2.(Comparator)
		if !ok1 || !ok2 {
			continue
		}
		diff, err := Compare(cmp1, cmp2, "", cfg, specialize)
		if err != nil {
			return nil, err
		}
		if diff == nil {
			continue
		}
		if !cfg.NewFile && (p.Name1 == "" || p.Name2 == "") {
			diff.Fatal = true
		}
		details = append(details, diff)
	}
	return details, nil
}

func memberOrSentinel(c Container, name string, specialize SpecializeFunc) (File, error) {
	if name == "" {
		return specializedNonExisting(specialize), nil
	}
	m, err := c.Member(name, specialize)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func specializedNonExisting(specialize SpecializeFunc) File {
	nx := NewNonExistingFile()
	if specialize == nil {
		return nx
	}
	if cmp := specialize(nx); cmp != nil {
		return cmp
	}
	return nx
}
