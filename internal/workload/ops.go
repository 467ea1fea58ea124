package workload

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// seed keeps generated inputs reproducible across runs.
const seed = 0x5eed

func rng(size uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, size))
}

// shuffled returns a permutation of 0..size*10, like the classic sort demo.
func shuffled(size uint64) []uint64 {
	n := size * 10
	v := make([]uint64, n)
	for i := range v {
		v[i] = uint64(i)
	}
	r := rng(size)
	r.Shuffle(len(v), func(i, j int) { v[i], v[j] = v[j], v[i] })
	return v
}

func random(size uint64) []uint64 {
	r := rng(size)
	v := make([]uint64, size)
	for i := range v {
		v[i] = r.Uint64()
	}
	return v
}

type searchInput struct {
	sorted []uint64
	target uint64
}

func sortedWithTarget(size uint64) searchInput {
	v := make([]uint64, size)
	for i := range v {
		v[i] = uint64(i) * 2
	}
	// Odd target is never present, so every search walks the full depth.
	return searchInput{sorted: v, target: uint64(rng(size).IntN(int(size)))*2 + 1}
}

func sortUnstable(v []uint64) []uint64 {
	slices.Sort(v)
	return v
}

func sortStable(v []uint64) []uint64 {
	slices.SortStableFunc(v, cmp.Compare[uint64])
	return v
}

func sum(v []uint64) uint64 {
	var total uint64
	for _, x := range v {
		total += x
	}
	return total
}

func buildMap(v []uint64) map[uint64]struct{} {
	m := make(map[uint64]struct{})
	for _, x := range v {
		m[x] = struct{}{}
	}
	return m
}

func binarySearch(in searchInput) int {
	i, _ := slices.BinarySearch(in.sorted, in.target)
	return i
}

func insertionSort(v []uint64) []uint64 {
	for i := 1; i < len(v); i++ {
		x := v[i]
		j := i
		for ; j > 0 && v[j-1] > x; j-- {
			v[j] = v[j-1]
		}
		v[j] = x
	}
	return v
}
