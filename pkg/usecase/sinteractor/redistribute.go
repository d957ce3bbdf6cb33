// 指示: miu200521358
package sinteractor

import (
	"math"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

// validateRedistributeTargets は編集対象インフルエンス指定を検証する。
func (uc *SkinUsecase) validateRedistributeTargets(targetIndex int, sourceIndexes []int) error {
	if len(sourceIndexes) == 0 {
		return serrors.NewInvalidArgument("再配分元インフルエンスが未指定です")
	}
	if !uc.cluster.Influences.Contains(targetIndex) {
		return serrors.NewInfluenceNotFound("編集対象インフルエンスが未登録です: %d", targetIndex)
	}
	seen := map[int]struct{}{}
	for _, sourceIndex := range sourceIndexes {
		if sourceIndex == targetIndex {
			return serrors.NewInvalidArgument("再配分元に編集対象インフルエンスは指定できません: %d", sourceIndex)
		}
		if _, exists := seen[sourceIndex]; exists {
			return serrors.NewInvalidArgument("再配分元インフルエンスが重複しています: %d", sourceIndex)
		}
		seen[sourceIndex] = struct{}{}
		if !uc.cluster.Influences.Contains(sourceIndex) {
			return serrors.NewInfluenceNotFound("再配分元インフルエンスが未登録です: %d", sourceIndex)
		}
	}
	return nil
}

// SetVertexWeights は対象インフルエンスのウェイトを設定し、差分を再配分元へ比例配分する。
// 頂点ごとに独立して処理し、結果は未コミットのまま返す。呼び出し側が Apply で永続化する。
func (uc *SkinUsecase) SetVertexWeights(
	vertexIndexes []int,
	targetIndex int,
	sourceIndexes []int,
	amount float64,
	falloff model.FalloffMap,
) (*EditResult, error) {
	if err := uc.requireCluster(); err != nil {
		return nil, err
	}
	if err := requireVertices(vertexIndexes); err != nil {
		return nil, err
	}
	if err := uc.validateRedistributeTargets(targetIndex, sourceIndexes); err != nil {
		return nil, err
	}
	if amount < 0 || amount > 1 {
		return nil, serrors.NewInvalidArgument("設定ウェイト量が範囲外です: %f", amount)
	}

	result := newEditResult()
	for _, vertexIndex := range vertexIndexes {
		effectiveAmount := amount * falloff.Factor(vertexIndex)
		uc.redistributeSingleVertex(result, vertexIndex, targetIndex, sourceIndexes, amount, effectiveAmount)
	}
	return result, nil
}

// ScaleVertexWeights は対象インフルエンスのウェイトを百分率で拡縮する。
// 変化量にのみ減衰を適用した上で SetVertexWeights と同じ再配分を行う。
func (uc *SkinUsecase) ScaleVertexWeights(
	vertexIndexes []int,
	targetIndex int,
	sourceIndexes []int,
	percent float64,
	falloff model.FalloffMap,
) (*EditResult, error) {
	if percent < 0 {
		return nil, serrors.NewInvalidArgument("拡縮率が負値です: %f", percent)
	}
	return uc.adjustVertexWeights(vertexIndexes, targetIndex, sourceIndexes, falloff,
		func(current float64) float64 {
			return current*percent - current
		})
}

// IncrementVertexWeights は対象インフルエンスのウェイトへ増分を加算する。
// 変化量にのみ減衰を適用した上で SetVertexWeights と同じ再配分を行う。
func (uc *SkinUsecase) IncrementVertexWeights(
	vertexIndexes []int,
	targetIndex int,
	sourceIndexes []int,
	delta float64,
	falloff model.FalloffMap,
) (*EditResult, error) {
	return uc.adjustVertexWeights(vertexIndexes, targetIndex, sourceIndexes, falloff,
		func(current float64) float64 {
			return delta
		})
}

// adjustVertexWeights は現在値からの変化量を頂点ごとに算出して再配分する。
func (uc *SkinUsecase) adjustVertexWeights(
	vertexIndexes []int,
	targetIndex int,
	sourceIndexes []int,
	falloff model.FalloffMap,
	changeOf func(current float64) float64,
) (*EditResult, error) {
	if err := uc.requireCluster(); err != nil {
		return nil, err
	}
	if err := requireVertices(vertexIndexes); err != nil {
		return nil, err
	}
	if err := uc.validateRedistributeTargets(targetIndex, sourceIndexes); err != nil {
		return nil, err
	}

	result := newEditResult()
	for _, vertexIndex := range vertexIndexes {
		weights, _ := uc.cluster.Weights.Weights(vertexIndex)
		current := weights[targetIndex]
		amount := current + changeOf(current)*falloff.Factor(vertexIndex)
		if amount < 0 {
			amount = 0
		}
		if amount > 1 {
			amount = 1
		}
		uc.redistributeSingleVertex(result, vertexIndex, targetIndex, sourceIndexes, amount, amount)
	}
	return result, nil
}

// redistributeSingleVertex は1頂点分の再配分を計算して結果へ積む。
// rawAmount は減衰適用前の指定量で、上限超過時の全置換判定に使う。
func (uc *SkinUsecase) redistributeSingleVertex(
	result *EditResult,
	vertexIndex int,
	targetIndex int,
	sourceIndexes []int,
	rawAmount float64,
	effectiveAmount float64,
) {
	store := uc.cluster.Weights
	weights, dropped := store.Weights(vertexIndex)
	for range dropped {
		result.addWarning(vertexIndex, model.SkinWarningNullInfluenceDropped)
	}

	current := weights[targetIndex]
	total := 0.0
	for _, sourceIndex := range sourceIndexes {
		total += weights[sourceIndex]
	}
	_, targetPresent := weights[targetIndex]
	maxInfluences := store.MaxInfluences()
	underCap := maxInfluences <= 0 || weights.NonZeroCount(store.PruneTolerance()) < maxInfluences

	if targetPresent || underCap {
		switch {
		case effectiveAmount < current && total > 0:
			// 減らした分を再配分元の既存比率に応じて戻す。
			diff := current - effectiveAmount
			next := weights.Copy()
			for _, sourceIndex := range sourceIndexes {
				next[sourceIndex] += diff * weights[sourceIndex] / total
			}
			setOrPrune(next, targetIndex, current-diff, store.PruneTolerance())
			result.Updates[vertexIndex] = next
		case effectiveAmount > current && total > 0:
			// 再配分元の保持量を超えては奪えない。
			diff := math.Min(effectiveAmount-current, total)
			next := weights.Copy()
			for _, sourceIndex := range sourceIndexes {
				setOrPrune(next, sourceIndex, next[sourceIndex]-diff*weights[sourceIndex]/total, store.PruneTolerance())
			}
			next[targetIndex] = current + diff
			result.Updates[vertexIndex] = next
		default:
			result.addWarning(vertexIndex, model.SkinWarningRedistributeNoSource)
		}
		return
	}

	// 対象が未保持かつ上限到達済みの頂点。
	if math.Abs(rawAmount-total) < model.NormalizeTolerance {
		// 再配分元一式の全量置換は上限内で成立する。
		result.Updates[vertexIndex] = model.WeightMap{targetIndex: 1.0}
		return
	}
	if rawAmount == 0 {
		result.addWarning(vertexIndex, model.SkinWarningRedistributeNoSource)
		return
	}
	result.addFailed(vertexIndex, serrors.NewMaxInfluencesExceeded(
		"インフルエンス上限(%d)を超えるため頂点%dへ追加できません", maxInfluences, vertexIndex))
}

// setOrPrune は許容値以下の値を削除扱いにして設定する。
func setOrPrune(weights model.WeightMap, index int, value float64, pruneTolerance float64) {
	if value <= pruneTolerance {
		delete(weights, index)
		return
	}
	weights[index] = value
}
