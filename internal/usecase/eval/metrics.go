// Package eval computes standard IR quality metrics over retrieval runs:
// precision at k and mean average precision.
package eval

import (
	"fmt"

	"github.com/kailas-cloud/semrank/internal/domain"
)

// PrecisionAtK computes the fraction of the first k retrieved ids present in
// the ground truth set. k is clamped to len(retrieved); a clamp to zero yields
// 0.0. Duplicate retrieved ids count independently.
func PrecisionAtK(groundTruth map[string]struct{}, retrieved []string, k int) float64 {
	if k > len(retrieved) {
		k = len(retrieved)
	}
	if k <= 0 {
		return 0.0
	}

	relevant := 0
	for _, id := range retrieved[:k] {
		if _, ok := groundTruth[id]; ok {
			relevant++
		}
	}

	return float64(relevant) / float64(k)
}

// PrecisionsAtK computes PrecisionAtK per query. The i-th ground truth set
// pairs with the i-th retrieved list; a length mismatch fails with
// domain.ErrEvaluationInput. Averaging is left to the caller.
func PrecisionsAtK(
	groundTruths []map[string]struct{}, retrievedLists [][]string, k int,
) ([]float64, error) {
	if len(groundTruths) != len(retrievedLists) {
		return nil, fmt.Errorf(
			"%d ground truth sets for %d retrieved lists: %w",
			len(groundTruths), len(retrievedLists), domain.ErrEvaluationInput,
		)
	}

	precisions := make([]float64, len(groundTruths))
	for i := range groundTruths {
		precisions[i] = PrecisionAtK(groundTruths[i], retrievedLists[i], k)
	}
	return precisions, nil
}

// averagePrecision computes AP over the first k retrieved ids: the mean of
// precision values taken at each relevant hit position, divided by the number
// of hits. No hits yields 0.0.
func averagePrecision(groundTruth map[string]struct{}, retrieved []string, k int) float64 {
	if k > len(retrieved) {
		k = len(retrieved)
	}
	if k <= 0 {
		return 0.0
	}

	relevant := 0
	sum := 0.0
	for j, id := range retrieved[:k] {
		if _, ok := groundTruth[id]; ok {
			relevant++
			sum += float64(relevant) / float64(j+1)
		}
	}

	if relevant == 0 {
		return 0.0
	}
	return sum / float64(relevant)
}

// MeanAveragePrecision computes MAP over a batch of queries, each truncated at
// rank k. Zero queries yields 0.0; a pairing length mismatch fails with
// domain.ErrEvaluationInput.
func MeanAveragePrecision(
	groundTruths []map[string]struct{}, retrievedLists [][]string, k int,
) (float64, error) {
	if len(groundTruths) != len(retrievedLists) {
		return 0, fmt.Errorf(
			"%d ground truth sets for %d retrieved lists: %w",
			len(groundTruths), len(retrievedLists), domain.ErrEvaluationInput,
		)
	}
	if len(groundTruths) == 0 {
		return 0.0, nil
	}

	sum := 0.0
	for i := range groundTruths {
		sum += averagePrecision(groundTruths[i], retrievedLists[i], k)
	}
	return sum / float64(len(groundTruths)), nil
}
