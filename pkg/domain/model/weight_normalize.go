// 指示: miu200521358
package model

import (
	"math"
	"sort"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

// weightedEntry は切り捨て判定用のウェイト1件を表す。
type weightedEntry struct {
	Index  int
	Weight float64
}

// PruneWeights は許容値未満・無効インフルエンス・上限超過分を切り捨てたウェイトを返す。
// maxInfluences が0以下の場合は件数上限を適用しない。
func PruneWeights(weights WeightMap, pruneTolerance float64, maxInfluences int, isNull func(index int) bool) WeightMap {
	out := make(WeightMap, len(weights))
	for index, weight := range weights {
		if weight <= pruneTolerance {
			continue
		}
		if isNull != nil && isNull(index) {
			continue
		}
		out[index] = weight
	}
	if maxInfluences <= 0 || len(out) <= maxInfluences {
		return out
	}

	// ウェイト昇順に並べ、上限を超える下位分を切り捨てる。
	entries := make([]weightedEntry, 0, len(out))
	for index, weight := range out {
		entries = append(entries, weightedEntry{Index: index, Weight: weight})
	}
	sort.Slice(entries, func(i int, j int) bool {
		if entries[i].Weight == entries[j].Weight {
			return entries[i].Index < entries[j].Index
		}
		return entries[i].Weight < entries[j].Weight
	})
	for _, entry := range entries[:len(entries)-maxInfluences] {
		delete(out, entry.Index)
	}
	return out
}

// NormalizeWeights は総和1.0へ再スケールしたウェイトを返す。
// 総和0の場合は EmptyWeightSet エラーを返す。
func NormalizeWeights(weights WeightMap) (WeightMap, error) {
	total := weights.Sum()
	if total <= 0 {
		return nil, serrors.NewEmptyWeightSet("総和0のウェイトは正規化できません")
	}
	out := weights.Copy()
	if math.Abs(total-1.0) < NormalizeTolerance {
		return out, nil
	}
	scale := 1.0 / total
	for index, weight := range out {
		out[index] = weight * scale
	}
	return out, nil
}

// IsNormalizedWeights は総和がほぼ1.0か判定する。
func IsNormalizedWeights(weights WeightMap) bool {
	return math.Abs(weights.Sum()-1.0) < NormalizeTolerance
}
