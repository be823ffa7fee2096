package coref

import "github.com/calperum/textkit/core/collections"

// ScoreOptions configures ScoreMulti.
type ScoreOptions struct {
	// SelfEdges treats every item as coreferent with itself. Without
	// self edges a singleton cluster contributes no coref links.
	SelfEdges bool
}

// ScoreMulti scores a predicted clustering against a gold clustering
// with the multi-cluster BLANC variant: the same item may appear in
// several clusters, and the key and response item sets may differ. The
// differing-item-set handling follows Luo et al. 2014.
//
// Each cluster is a slice of items; duplicates within a cluster are
// ignored.
func ScoreMulti[T comparable](predicted, gold [][]T, opts ScoreOptions) BLANCResult {
	predictedNeighbors := neighborSets(predicted, opts.SelfEdges)
	goldNeighbors := neighborSets(gold, opts.SelfEdges)

	responseItems := itemSet(predicted)
	keyItems := itemSet(gold)

	itemsInBoth := make(map[T]struct{})
	for item := range keyItems {
		if _, ok := responseItems[item]; ok {
			itemsInBoth[item] = struct{}{}
		}
	}

	selfAdjustment := -1
	if opts.SelfEdges {
		selfAdjustment = 0
	}

	var (
		corefLinksInBoth     int
		corefLinksInKey      int
		corefLinksInResponse int

		nonCorefLinksInBoth     int
		nonCorefLinksInKey      int
		nonCorefLinksInResponse int
	)

	for _, item := range allItems(keyItems, responseItems) {
		_, inKey := keyItems[item]
		_, inResponse := responseItems[item]

		itemPredicted := predictedNeighbors.Get(item)
		itemGold := goldNeighbors.Get(item)

		// The coref contribution of an item is the size of the
		// intersection of its gold and predicted neighbor sets.
		for _, neighbor := range itemPredicted {
			if goldNeighbors.Contains(item, neighbor) {
				corefLinksInBoth++
			}
		}
		corefLinksInResponse += len(itemPredicted)
		corefLinksInKey += len(itemGold)

		if inKey {
			nonCorefLinksInKey += len(keyItems) - len(itemGold) + selfAdjustment
		}
		if inResponse {
			nonCorefLinksInResponse += len(responseItems) - len(itemPredicted) + selfAdjustment
		}

		if inKey && inResponse {
			neighborsInEither := make(map[T]struct{}, len(itemPredicted)+len(itemGold))
			for _, neighbor := range itemPredicted {
				neighborsInEither[neighbor] = struct{}{}
			}
			for _, neighbor := range itemGold {
				neighborsInEither[neighbor] = struct{}{}
			}
			for other := range itemsInBoth {
				if _, linked := neighborsInEither[other]; !linked {
					nonCorefLinksInBoth++
				}
			}
			// The item itself is never a non-coref neighbor.
			nonCorefLinksInBoth += selfAdjustment
		}
	}

	return NewBLANCResult(
		setsEqual(keyItems, responseItems),
		corefLinksInBoth, corefLinksInKey, corefLinksInResponse,
		nonCorefLinksInBoth, nonCorefLinksInKey, nonCorefLinksInResponse,
	)
}

// neighborSets builds the item-to-coreferent-neighbors multimap for a
// clustering. An item in several clusters gets the union of their
// members.
func neighborSets[T comparable](clusters [][]T, selfEdges bool) *collections.SetMultimap[T, T] {
	neighbors := collections.NewSetMultimap[T, T]()
	for _, cluster := range clusters {
		for _, item := range cluster {
			for _, other := range cluster {
				if !selfEdges && other == item {
					continue
				}
				neighbors.Put(item, other)
			}
		}
	}
	return neighbors
}

func itemSet[T comparable](clusters [][]T) map[T]struct{} {
	items := make(map[T]struct{})
	for _, cluster := range clusters {
		for _, item := range cluster {
			items[item] = struct{}{}
		}
	}
	return items
}

func allItems[T comparable](keyItems, responseItems map[T]struct{}) []T {
	items := make([]T, 0, len(keyItems)+len(responseItems))
	for item := range keyItems {
		items = append(items, item)
	}
	for item := range responseItems {
		if _, dup := keyItems[item]; !dup {
			items = append(items, item)
		}
	}
	return items
}

func setsEqual[T comparable](a, b map[T]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for item := range a {
		if _, ok := b[item]; !ok {
			return false
		}
	}
	return true
}
