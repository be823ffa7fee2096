// Package coref scores coreference clusterings with the BLANC family
// of measures.
//
// BLANC treats a clustering as a set of pairwise links: coref links
// join items in the same cluster, non-coref links join items in
// different clusters. Precision and recall are computed separately for
// the two link kinds and blended into a single score.
//
// See Recasens, "Coreference: Theory, Annotation, Resolution, and
// Evaluation" (2010), and Luo et al., "An Extension of BLANC to System
// Mentions" (2014) for the variant that tolerates differing item sets.
package coref

import "github.com/calperum/textkit/core/evaluation"

// BLANCResult holds the directed link counts underlying a BLANC score.
// Counts are per-item contributions, so every undirected link is
// counted once from each endpoint.
type BLANCResult struct {
	itemSetsMatch bool

	corefLinksInBoth     int
	corefLinksInKey      int
	corefLinksInResponse int

	nonCorefLinksInBoth     int
	nonCorefLinksInKey      int
	nonCorefLinksInResponse int
}

// NewBLANCResult assembles a result from raw link counts. itemSetsMatch
// records whether the key and response clusterings cover identical item
// sets; it only matters when both clusterings carry no links at all.
func NewBLANCResult(
	itemSetsMatch bool,
	corefLinksInBoth, corefLinksInKey, corefLinksInResponse int,
	nonCorefLinksInBoth, nonCorefLinksInKey, nonCorefLinksInResponse int,
) BLANCResult {
	return BLANCResult{
		itemSetsMatch:           itemSetsMatch,
		corefLinksInBoth:        corefLinksInBoth,
		corefLinksInKey:         corefLinksInKey,
		corefLinksInResponse:    corefLinksInResponse,
		nonCorefLinksInBoth:     nonCorefLinksInBoth,
		nonCorefLinksInKey:      nonCorefLinksInKey,
		nonCorefLinksInResponse: nonCorefLinksInResponse,
	}
}

// ItemSetsMatch reports whether key and response covered the same items.
func (r BLANCResult) ItemSetsMatch() bool {
	return r.itemSetsMatch
}

// CorefLinksInBoth returns the coref link count shared by key and
// response.
func (r BLANCResult) CorefLinksInBoth() int {
	return r.corefLinksInBoth
}

// CorefLinksInKey returns the coref link count in the key.
func (r BLANCResult) CorefLinksInKey() int {
	return r.corefLinksInKey
}

// CorefLinksInResponse returns the coref link count in the response.
func (r BLANCResult) CorefLinksInResponse() int {
	return r.corefLinksInResponse
}

// NonCorefLinksInBoth returns the non-coref link count shared by key
// and response.
func (r BLANCResult) NonCorefLinksInBoth() int {
	return r.nonCorefLinksInBoth
}

// NonCorefLinksInKey returns the non-coref link count in the key.
func (r BLANCResult) NonCorefLinksInKey() int {
	return r.nonCorefLinksInKey
}

// NonCorefLinksInResponse returns the non-coref link count in the
// response.
func (r BLANCResult) NonCorefLinksInResponse() int {
	return r.nonCorefLinksInResponse
}

// CorefScores returns precision and recall over coref links.
func (r BLANCResult) CorefScores() evaluation.PrecisionRecall {
	return linkScores(r.corefLinksInBoth, r.corefLinksInKey, r.corefLinksInResponse)
}

// NonCorefScores returns precision and recall over non-coref links.
func (r BLANCResult) NonCorefScores() evaluation.PrecisionRecall {
	return linkScores(r.nonCorefLinksInBoth, r.nonCorefLinksInKey, r.nonCorefLinksInResponse)
}

func linkScores(inBoth, inKey, inResponse int) evaluation.PrecisionRecall {
	var precision, recall float64
	if inResponse > 0 {
		precision = float64(inBoth) / float64(inResponse)
	}
	if inKey > 0 {
		recall = float64(inBoth) / float64(inKey)
	}
	return evaluation.NewPrecisionRecall(precision, recall)
}

// Score returns the blended BLANC score. With links on both the coref
// and non-coref sides it is the arithmetic mean of the two F scores;
// when one side carries no links in either clustering, the other
// side's F stands alone. Two linkless clusterings score 1 when their
// item sets match and 0 otherwise.
func (r BLANCResult) Score() float64 {
	noCorefLinks := r.corefLinksInKey+r.corefLinksInResponse == 0
	noNonCorefLinks := r.nonCorefLinksInKey+r.nonCorefLinksInResponse == 0

	switch {
	case noCorefLinks && noNonCorefLinks:
		if r.itemSetsMatch {
			return 1
		}
		return 0
	case noCorefLinks:
		return r.NonCorefScores().F1()
	case noNonCorefLinks:
		return r.CorefScores().F1()
	default:
		return (r.CorefScores().F1() + r.NonCorefScores().F1()) / 2
	}
}
