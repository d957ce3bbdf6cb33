// 指示: miu200521358
package model

import (
	"math"
	"sort"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

// WeightStore は頂点ごとのウェイトを保持する唯一の永続先を表す。
// 書き込みは単一呼び出し元によって直列化される前提とする。
type WeightStore struct {
	weights          map[int]WeightMap
	registry         *InfluenceRegistry
	normalizeOnWrite bool
	pruneTolerance   float64
	maxInfluences    int
}

// NewWeightStore はウェイトストアを生成する。
func NewWeightStore(registry *InfluenceRegistry) *WeightStore {
	return &WeightStore{
		weights:          map[int]WeightMap{},
		registry:         registry,
		normalizeOnWrite: true,
		pruneTolerance:   DefaultPruneTolerance,
		maxInfluences:    DefaultMaxInfluences,
	}
}

// PruneTolerance はウェイト切り捨て許容値を返す。
func (s *WeightStore) PruneTolerance() float64 {
	return s.pruneTolerance
}

// SetPruneTolerance はウェイト切り捨て許容値を設定する。
func (s *WeightStore) SetPruneTolerance(tolerance float64) {
	if tolerance > 0 {
		s.pruneTolerance = tolerance
	}
}

// MaxInfluences は1頂点あたりのインフルエンス上限を返す。0以下は無制限。
func (s *WeightStore) MaxInfluences() int {
	return s.maxInfluences
}

// SetMaxInfluences は1頂点あたりのインフルエンス上限を設定する。
func (s *WeightStore) SetMaxInfluences(maxInfluences int) {
	s.maxInfluences = maxInfluences
}

// NormalizeOnWrite は書き込み時自動正規化の有効状態を返す。
func (s *WeightStore) NormalizeOnWrite() bool {
	return s.normalizeOnWrite
}

// SetNormalizeOnWrite は書き込み時自動正規化を切り替える。
func (s *WeightStore) SetNormalizeOnWrite(enabled bool) {
	s.normalizeOnWrite = enabled
}

// SuspendNormalizeOnWrite は自動正規化を一時停止し、復元関数を返す。
// 呼び出し側は defer で必ず復元すること。
func (s *WeightStore) SuspendNormalizeOnWrite() func() {
	previous := s.normalizeOnWrite
	s.normalizeOnWrite = false
	return func() {
		s.normalizeOnWrite = previous
	}
}

// isNullInfluence はindexが無効インフルエンスを指すか判定する。
func (s *WeightStore) isNullInfluence(index int) bool {
	if s.registry == nil {
		return false
	}
	return s.registry.IsNullSlot(index)
}

// Weights は頂点ウェイトのコピーを返す。
// null化されたインフルエンス参照は結果から除外し、そのindex一覧を併せて返す。
// 未登録頂点は空マップを返す。
func (s *WeightStore) Weights(vertexIndex int) (WeightMap, []int) {
	stored, exists := s.weights[vertexIndex]
	if !exists {
		return WeightMap{}, nil
	}
	out := make(WeightMap, len(stored))
	dropped := []int(nil)
	for index, weight := range stored {
		if s.isNullInfluence(index) {
			dropped = append(dropped, index)
			continue
		}
		out[index] = weight
	}
	sort.Ints(dropped)
	return out, dropped
}

// WeightList は指定頂点のウェイト一覧を返す。頂点未指定の場合は全頂点を返す。
func (s *WeightStore) WeightList(vertexIndexes ...int) map[int]WeightMap {
	out := map[int]WeightMap{}
	if len(vertexIndexes) == 0 {
		for vertexIndex := range s.weights {
			weights, _ := s.Weights(vertexIndex)
			out[vertexIndex] = weights
		}
		return out
	}
	for _, vertexIndex := range vertexIndexes {
		weights, _ := s.Weights(vertexIndex)
		out[vertexIndex] = weights
	}
	return out
}

// VertexIndexes はウェイトを保持する頂点indexの昇順一覧を返す。
func (s *WeightStore) VertexIndexes() []int {
	out := make([]int, 0, len(s.weights))
	for vertexIndex := range s.weights {
		out = append(out, vertexIndex)
	}
	sort.Ints(out)
	return out
}

// SetWeights は頂点ウェイトを書き込む。
// 現在値と一致する項目は書き込まず、新マップに無いインフルエンスの項目は明示的に削除する。
// 許容値以下の値は0を書く代わりに項目を削除する。
func (s *WeightStore) SetWeights(vertexIndex int, weights WeightMap) error {
	if vertexIndex < 0 {
		return serrors.NewInvalidArgument("頂点indexが不正です: %d", vertexIndex)
	}

	incoming := weights
	if s.normalizeOnWrite {
		pruned := PruneWeights(incoming, s.pruneTolerance, s.maxInfluences, s.isNullInfluence)
		normalized, err := NormalizeWeights(pruned)
		if err != nil {
			return err
		}
		incoming = normalized
	}

	current, exists := s.weights[vertexIndex]
	if !exists {
		current = WeightMap{}
	}

	next := current.Copy()
	for index := range current {
		if _, keep := incoming[index]; !keep {
			delete(next, index)
		}
	}
	for index, weight := range incoming {
		if weight <= s.pruneTolerance {
			delete(next, index)
			continue
		}
		if existing, ok := next[index]; ok && math.Abs(existing-weight) < NormalizeTolerance {
			continue
		}
		next[index] = weight
	}

	if len(next) == 0 {
		delete(s.weights, vertexIndex)
		return nil
	}
	s.weights[vertexIndex] = next
	return nil
}

// UsedIds は実際にウェイトを保持しているインフルエンスindex集合を返す。
// vertexSubset を指定した場合はその頂点のみを走査する。
func (s *WeightStore) UsedIds(vertexSubset []int) map[int]struct{} {
	out := map[int]struct{}{}
	scan := func(weights WeightMap) {
		for index, weight := range weights {
			if weight > s.pruneTolerance {
				out[index] = struct{}{}
			}
		}
	}
	if len(vertexSubset) == 0 {
		for _, weights := range s.weights {
			scan(weights)
		}
		return out
	}
	for _, vertexIndex := range vertexSubset {
		if weights, exists := s.weights[vertexIndex]; exists {
			scan(weights)
		}
	}
	return out
}

// HasNonZeroWeight はインフルエンスがいずれかの頂点でウェイトを保持するか判定する。
func (s *WeightStore) HasNonZeroWeight(influenceIndex int) bool {
	for _, weights := range s.weights {
		if weights[influenceIndex] > s.pruneTolerance {
			return true
		}
	}
	return false
}
