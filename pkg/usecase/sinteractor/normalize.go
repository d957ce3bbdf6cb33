// 指示: miu200521358
package sinteractor

import (
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
)

// PruneInfluences は許容値未満・無効インフルエンス・上限超過分を切り捨てたウェイトを返す。
func (uc *SkinUsecase) PruneInfluences(weights model.WeightMap) (model.WeightMap, error) {
	if err := uc.requireCluster(); err != nil {
		return nil, err
	}
	store := uc.cluster.Weights
	return model.PruneWeights(weights, store.PruneTolerance(), store.MaxInfluences(), uc.cluster.Influences.IsNullSlot), nil
}

// PruneVertexWeights は指定頂点の保存済みウェイトを切り捨てのみ行った結果を返す。
// 編集段階では再スケールしない。結果は未コミットであり、Apply で永続化する。
func (uc *SkinUsecase) PruneVertexWeights(vertexIndexes []int) (*EditResult, error) {
	if err := uc.requireCluster(); err != nil {
		return nil, err
	}
	if err := requireVertices(vertexIndexes); err != nil {
		return nil, err
	}

	result := newEditResult()
	for _, vertexIndex := range vertexIndexes {
		weights, dropped := uc.cluster.Weights.Weights(vertexIndex)
		for range dropped {
			result.addWarning(vertexIndex, model.SkinWarningNullInfluenceDropped)
		}
		pruned, err := uc.PruneInfluences(weights)
		if err != nil {
			result.addFailed(vertexIndex, err)
			continue
		}
		result.Updates[vertexIndex] = pruned
	}
	return result, nil
}

// Normalize は総和1.0へ再スケールしたウェイトを返す。prune指定時は切り捨てを先に行う。
func (uc *SkinUsecase) Normalize(weights model.WeightMap, prune bool) (model.WeightMap, error) {
	if err := uc.requireCluster(); err != nil {
		return nil, err
	}
	target := weights
	if prune {
		pruned, err := uc.PruneInfluences(weights)
		if err != nil {
			return nil, err
		}
		target = pruned
	}
	return model.NormalizeWeights(target)
}

// IsNormalized は総和がほぼ1.0か判定する。
func (uc *SkinUsecase) IsNormalized(weights model.WeightMap) bool {
	return model.IsNormalizedWeights(weights)
}

// NormalizeVertexWeights は指定頂点の保存済みウェイトを正規化した結果を返す。
// 結果は未コミットであり、Apply で永続化する。
func (uc *SkinUsecase) NormalizeVertexWeights(vertexIndexes []int) (*EditResult, error) {
	if err := uc.requireCluster(); err != nil {
		return nil, err
	}
	if err := requireVertices(vertexIndexes); err != nil {
		return nil, err
	}

	result := newEditResult()
	for _, vertexIndex := range vertexIndexes {
		weights, dropped := uc.cluster.Weights.Weights(vertexIndex)
		for range dropped {
			result.addWarning(vertexIndex, model.SkinWarningNullInfluenceDropped)
		}
		normalized, err := uc.Normalize(weights, true)
		if err != nil {
			result.addFailed(vertexIndex, err)
			continue
		}
		result.Updates[vertexIndex] = normalized
	}
	return result, nil
}
