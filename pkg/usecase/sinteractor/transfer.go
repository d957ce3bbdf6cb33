// 指示: miu200521358
package sinteractor

import (
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

// InfluenceMap は転送元インフルエンスindexから転送先indexへの対応を表す。
type InfluenceMap map[int]int

// BuildInfluenceMap は名前照合で転送元から転送先へのインフルエンス対応を構築する。
// 転送先に同名インフルエンスが無いものは対応へ含めず、名前一覧として返す。
func BuildInfluenceMap(source *model.InfluenceRegistry, destination *model.InfluenceRegistry) (InfluenceMap, []string, error) {
	if source == nil || destination == nil {
		return nil, nil, serrors.NewInvalidArgument("インフルエンス一覧が未設定です")
	}

	influenceMap := InfluenceMap{}
	missing := []string(nil)
	for _, influence := range source.Values() {
		matched, err := destination.GetByName(influence.Name())
		if err != nil {
			missing = append(missing, influence.Name())
			continue
		}
		influenceMap[influence.Index()] = matched.Index()
	}
	return influenceMap, missing, nil
}

// TransferWeightsFrom は別スキンクラスタのウェイトを名前対応で自クラスタへ転送した結果を返す。
// 転送先に対応インフルエンスが無いウェイトは落として警告する。結果は未コミット。
func (uc *SkinUsecase) TransferWeightsFrom(source *model.SkinCluster, vertexIndexes []int) (*EditResult, error) {
	if err := uc.requireCluster(); err != nil {
		return nil, err
	}
	if source == nil || source.Influences == nil || source.Weights == nil {
		return nil, serrors.NewInvalidArgument("転送元スキンクラスタが未設定です")
	}
	if len(vertexIndexes) == 0 {
		vertexIndexes = source.Weights.VertexIndexes()
	}
	if err := requireVertices(vertexIndexes); err != nil {
		return nil, err
	}

	influenceMap, missing, err := BuildInfluenceMap(source.Influences, uc.cluster.Influences)
	if err != nil {
		return nil, err
	}
	if len(influenceMap) == 0 {
		return nil, serrors.NewInfluenceNotFound("転送先に対応するインフルエンスが1件もありません")
	}

	result := newEditResult()
	for range missing {
		result.addWarning(-1, model.SkinWarningTransferInfluenceMissing)
	}
	for _, vertexIndex := range vertexIndexes {
		sourceWeights, dropped := source.Weights.Weights(vertexIndex)
		for range dropped {
			result.addWarning(vertexIndex, model.SkinWarningNullInfluenceDropped)
		}
		remapped := model.WeightMap{}
		for influenceIndex, weight := range sourceWeights {
			destinationIndex, mapped := influenceMap[influenceIndex]
			if !mapped {
				result.addWarning(vertexIndex, model.SkinWarningTransferInfluenceMissing)
				continue
			}
			remapped[destinationIndex] += weight
		}
		if len(remapped) == 0 {
			result.addFailed(vertexIndex, serrors.NewEmptyWeightSet("転送後のウェイトが空になりました: 頂点%d", vertexIndex))
			continue
		}
		result.Updates[vertexIndex] = remapped
	}
	return result, nil
}
