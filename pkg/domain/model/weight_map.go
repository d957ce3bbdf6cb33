// 指示: miu200521358
package model

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

const (
	// NormalizeTolerance は正規化判定の許容誤差。
	NormalizeTolerance = 1e-6
	// DefaultPruneTolerance はウェイト切り捨ての既定許容値。
	DefaultPruneTolerance = 1e-6
	// DefaultMaxInfluences は1頂点あたりの既定インフルエンス上限。
	DefaultMaxInfluences = 4
)

// WeightMap はインフルエンスindexからウェイト値への対応を表す。
type WeightMap map[int]float64

// Copy は深いコピーを返す。
func (m WeightMap) Copy() WeightMap {
	out := make(WeightMap, len(m))
	for index, weight := range m {
		out[index] = weight
	}
	return out
}

// Sum はウェイト総和を返す。
func (m WeightMap) Sum() float64 {
	if len(m) == 0 {
		return 0
	}
	values := make([]float64, 0, len(m))
	for _, weight := range m {
		values = append(values, weight)
	}
	return floats.Sum(values)
}

// NonZeroCount は許容値を超えるウェイト数を返す。
func (m WeightMap) NonZeroCount(tolerance float64) int {
	count := 0
	for _, weight := range m {
		if weight > tolerance {
			count++
		}
	}
	return count
}

// SortedIndexes はインフルエンスindexの昇順一覧を返す。
func (m WeightMap) SortedIndexes() []int {
	indexes := make([]int, 0, len(m))
	for index := range m {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)
	return indexes
}

// NearEquals は許容誤差内で一致するか判定する。
func (m WeightMap) NearEquals(other WeightMap, epsilon float64) bool {
	for index, weight := range m {
		if math.Abs(weight-other[index]) > epsilon {
			return false
		}
	}
	for index, weight := range other {
		if math.Abs(weight-m[index]) > epsilon {
			return false
		}
	}
	return true
}
