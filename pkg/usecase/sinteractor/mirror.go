// 指示: miu200521358
package sinteractor

import (
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

// mirrorInfluenceIndex は命名規約からミラー側インフルエンスindexを解決する。
func (uc *SkinUsecase) mirrorInfluenceIndex(influenceIndex int) (int, bool) {
	if uc.naming == nil {
		return -1, false
	}
	influence, err := uc.cluster.Influences.Get(influenceIndex)
	if err != nil {
		return -1, false
	}
	mirrorName, resolved := uc.naming.MirrorName(influence.Name())
	if !resolved {
		return -1, false
	}
	mirror, err := uc.cluster.Influences.GetByName(mirrorName)
	if err != nil {
		return -1, false
	}
	return mirror.Index(), true
}

// MirrorWeightMap はウェイトをミラー側インフルエンスへ移し替えた結果を返す。
// isCenterSeam の頂点は両側へ等分し、ミラー先が見つからないウェイトは元のまま残して警告する。
func (uc *SkinUsecase) MirrorWeightMap(weights model.WeightMap, isCenterSeam bool) (model.WeightMap, []string, error) {
	if err := uc.requireCluster(); err != nil {
		return nil, nil, err
	}

	out := model.WeightMap{}
	warnings := []string(nil)
	seamDone := map[int]struct{}{}
	for _, influenceIndex := range weights.SortedIndexes() {
		if _, done := seamDone[influenceIndex]; done {
			continue
		}
		weight := weights[influenceIndex]
		mirrorIndex, resolved := uc.mirrorInfluenceIndex(influenceIndex)
		if !resolved {
			out[influenceIndex] += weight
			warnings = append(warnings, model.SkinWarningMirrorInfluenceMissing)
			continue
		}
		if isCenterSeam {
			// 対称面上の頂点は両側インフルエンスへ等分する。
			average := (weights[influenceIndex] + weights[mirrorIndex]) / 2.0
			out[influenceIndex] = average
			out[mirrorIndex] = average
			seamDone[influenceIndex] = struct{}{}
			seamDone[mirrorIndex] = struct{}{}
			continue
		}
		out[mirrorIndex] += weight
	}
	return out, warnings, nil
}

// MirrorVertices は頂点集合のウェイトを対称側と同期した結果を返す。
// pull 指定時はミラー頂点のウェイトを自頂点へ取り込み、それ以外は自頂点のウェイトをミラー頂点へ押し出す。
// falloffAware 指定時はソフト選択の減衰で現在値と合成する。結果は未コミット。
func (uc *SkinUsecase) MirrorVertices(
	vertexIndexes []int,
	pull bool,
	tolerance float64,
	falloffAware bool,
) (*EditResult, error) {
	if err := uc.requireCluster(); err != nil {
		return nil, err
	}
	if err := requireVertices(vertexIndexes); err != nil {
		return nil, err
	}
	if uc.topology == nil {
		return nil, serrors.NewInvalidArgument("メッシュトポロジー提供者が未設定です")
	}

	var falloff model.FalloffMap
	if falloffAware && uc.selection != nil {
		falloff = uc.selection.SoftSelection()
	}

	result := newEditResult()
	for _, vertexIndex := range vertexIndexes {
		mirrorVertexIndex, err := uc.topology.MirrorVertexIndex(vertexIndex, tolerance)
		if err != nil {
			result.addWarning(vertexIndex, model.SkinWarningMirrorVertexMissing)
			continue
		}
		isCenterSeam := mirrorVertexIndex == vertexIndex

		sourceVertexIndex := vertexIndex
		destinationVertexIndex := mirrorVertexIndex
		if pull {
			sourceVertexIndex = mirrorVertexIndex
			destinationVertexIndex = vertexIndex
		}

		sourceWeights, dropped := uc.cluster.Weights.Weights(sourceVertexIndex)
		for range dropped {
			result.addWarning(sourceVertexIndex, model.SkinWarningNullInfluenceDropped)
		}
		mirrored, warnings, err := uc.MirrorWeightMap(sourceWeights, isCenterSeam)
		if err != nil {
			result.addFailed(vertexIndex, err)
			continue
		}
		for _, warningID := range warnings {
			result.addWarning(vertexIndex, warningID)
		}

		factor := 1.0
		if falloffAware {
			factor = falloff.Factor(destinationVertexIndex)
		}
		if factor < 1.0 {
			// 減衰に応じて現在値とミラー結果を合成する。
			currentWeights, _ := uc.cluster.Weights.Weights(destinationVertexIndex)
			if len(currentWeights) > 0 {
				blended, err := LinearBlend(currentWeights, mirrored, factor)
				if err != nil {
					result.addFailed(destinationVertexIndex, err)
					continue
				}
				mirrored = blended
			}
		}
		result.Updates[destinationVertexIndex] = mirrored
	}
	return result, nil
}
