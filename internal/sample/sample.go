package sample

import "math/rand/v2"

// Source supplies random ints in [0, n). Tests inject a deterministic one.
type Source func(n int) int

// Default returns the process-wide randomness source.
func Default() Source {
	return rand.IntN
}

// PickOne returns a uniformly random element of candidates. Calling it with
// an empty pool is a programming error; callers must check non-emptiness.
func PickOne[T any](src Source, candidates []T) T {
	if len(candidates) == 0 {
		panic("sample: PickOne called with empty candidates")
	}
	return candidates[src(len(candidates))]
}

// PickUpTo draws min(limit, len(candidates)) distinct elements without
// replacement, each remaining candidate equally likely at each draw. The
// result is in draw order, not input order.
func PickUpTo[T any](src Source, candidates []T, limit int) []T {
	if limit <= 0 || len(candidates) == 0 {
		return nil
	}
	if limit > len(candidates) {
		limit = len(candidates)
	}

	pool := make([]T, len(candidates))
	copy(pool, candidates)

	picked := make([]T, 0, limit)
	for len(picked) < limit {
		i := src(len(pool))
		picked = append(picked, pool[i])
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return picked
}
