// 指示: miu200521358
package sinteractor

import (
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
	"github.com/tiendc/go-deepcopy"
)

// clipboardEntry はコピー済み頂点ウェイト1件を表す。コピー順を保持する。
type clipboardEntry struct {
	VertexIndex int
	Weights     model.WeightMap
}

// CopyWeights は指定頂点のウェイトを値コピーでクリップボードへ取り込む。
// 以後のメッシュ編集の影響を受けない。空の頂点指定はクリップボードを消去する。
func (uc *SkinUsecase) CopyWeights(vertexIndexes []int) error {
	if err := uc.requireCluster(); err != nil {
		return err
	}
	if len(vertexIndexes) == 0 {
		uc.clipboard = nil
		return nil
	}

	entries := make([]clipboardEntry, 0, len(vertexIndexes))
	for _, vertexIndex := range vertexIndexes {
		weights, _ := uc.cluster.Weights.Weights(vertexIndex)
		snapshot := model.WeightMap{}
		if err := deepcopy.Copy(&snapshot, weights); err != nil {
			return serrors.NewInvalidArgument("ウェイトのコピーに失敗しました: %v", err)
		}
		entries = append(entries, clipboardEntry{VertexIndex: vertexIndex, Weights: snapshot})
	}
	uc.clipboard = entries
	return nil
}

// ClipboardLen はクリップボード内の件数を返す。
func (uc *SkinUsecase) ClipboardLen() int {
	return len(uc.clipboard)
}

// PasteWeights はクリップボードのウェイトを対象頂点へ貼り付けた結果を返す。
// 件数が一致する場合はコピー順と対象順で1対1に対応させる。
// 件数が一致しない場合は最初にコピーした1件を全対象へブロードキャストする。結果は未コミット。
func (uc *SkinUsecase) PasteWeights(targetVertexIndexes []int) (*EditResult, error) {
	if err := uc.requireCluster(); err != nil {
		return nil, err
	}
	if err := requireVertices(targetVertexIndexes); err != nil {
		return nil, err
	}
	if len(uc.clipboard) == 0 {
		return nil, serrors.NewInvalidArgument("クリップボードが空です")
	}

	result := newEditResult()
	if len(targetVertexIndexes) == len(uc.clipboard) {
		for i, vertexIndex := range targetVertexIndexes {
			result.Updates[vertexIndex] = uc.clipboard[i].Weights.Copy()
		}
		return result, nil
	}
	broadcast := uc.clipboard[0].Weights
	for _, vertexIndex := range targetVertexIndexes {
		result.Updates[vertexIndex] = broadcast.Copy()
		result.addWarning(vertexIndex, model.SkinWarningClipboardBroadcast)
	}
	return result, nil
}

// PasteAveragedWeights はクリップボード全件の平均を全対象頂点へ貼り付けた結果を返す。
func (uc *SkinUsecase) PasteAveragedWeights(targetVertexIndexes []int) (*EditResult, error) {
	if err := uc.requireCluster(); err != nil {
		return nil, err
	}
	if err := requireVertices(targetVertexIndexes); err != nil {
		return nil, err
	}
	if len(uc.clipboard) == 0 {
		return nil, serrors.NewInvalidArgument("クリップボードが空です")
	}

	weightMaps := make([]model.WeightMap, 0, len(uc.clipboard))
	for _, entry := range uc.clipboard {
		weightMaps = append(weightMaps, entry.Weights)
	}
	averaged, err := Average(weightMaps)
	if err != nil {
		return nil, err
	}

	result := newEditResult()
	for _, vertexIndex := range targetVertexIndexes {
		result.Updates[vertexIndex] = averaged.Copy()
	}
	return result, nil
}
