package collections

import (
	"fmt"

	"github.com/calperum/textkit/core/errors"
)

// ZipPair holds one left value and one right value matched by a common
// key.
type ZipPair[V any] struct {
	Left  V
	Right V
}

// ZippedValues is the result of ZipValues: values paired by common keys
// plus the values whose keys appear on only one side.
type ZippedValues[V any] struct {
	pairs     []ZipPair[V]
	leftOnly  []V
	rightOnly []V
}

// Pairs returns the value pairs for keys present in both maps.
func (z ZippedValues[V]) Pairs() []ZipPair[V] {
	return z.pairs
}

// LeftOnly returns the left values whose keys are absent from the right
// map.
func (z ZippedValues[V]) LeftOnly() []V {
	return z.leftOnly
}

// RightOnly returns the right values whose keys are absent from the
// left map.
func (z ZippedValues[V]) RightOnly() []V {
	return z.rightOnly
}

// PerfectlyAligned reports whether every key appeared in both maps.
func (z ZippedValues[V]) PerfectlyAligned() bool {
	return len(z.leftOnly) == 0 && len(z.rightOnly) == 0
}

// ZipValues pairs up the values of two maps by their common keys. Pair
// order is unspecified.
func ZipValues[K comparable, V any](left, right map[K]V) ZippedValues[V] {
	var z ZippedValues[V]
	for key, leftValue := range left {
		if rightValue, ok := right[key]; ok {
			z.pairs = append(z.pairs, ZipPair[V]{Left: leftValue, Right: rightValue})
		} else {
			z.leftOnly = append(z.leftOnly, leftValue)
		}
	}
	for key, rightValue := range right {
		if _, ok := left[key]; !ok {
			z.rightOnly = append(z.rightOnly, rightValue)
		}
	}
	return z
}

// IndexMap builds a map from the items of a sequence to their
// zero-indexed positions. Duplicate items fail.
func IndexMap[T comparable](items []T) (map[T]int, error) {
	indexed := make(map[T]int, len(items))
	for i, item := range items {
		if prev, dup := indexed[item]; dup {
			return nil, errors.NewValidation("items",
				fmt.Sprintf("duplicate item %v at positions %d and %d", item, prev, i))
		}
		indexed[item] = i
	}
	return indexed, nil
}

// TransformEntries rebuilds a map with keys transformed by keyFn and
// values transformed by valueFn. keyFn must be an injection over the
// input keys; a collision between transformed keys fails.
func TransformEntries[K1 comparable, V1 any, K2 comparable, V2 any](
	input map[K1]V1,
	keyFn func(K1) K2,
	valueFn func(V1) V2,
) (map[K2]V2, error) {
	out := make(map[K2]V2, len(input))
	for key, value := range input {
		transformed := keyFn(key)
		if _, dup := out[transformed]; dup {
			return nil, errors.NewValidation("key",
				fmt.Sprintf("transformed keys collide on %v", transformed))
		}
		out[transformed] = valueFn(value)
	}
	return out, nil
}
