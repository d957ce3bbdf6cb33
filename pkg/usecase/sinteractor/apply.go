// 指示: miu200521358
package sinteractor

import (
	"sort"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

// Apply は編集結果のウェイトをストアへ一括コミットする。
// コミット中は書き込み時自動正規化を停止し、終了時に必ず復元する。
// 頂点単位の失敗は収集して続行し、コミット済み頂点は巻き戻さない。
func (uc *SkinUsecase) Apply(updates map[int]model.WeightMap, reporter IApplyProgressReporter) (*ApplyResult, error) {
	if err := uc.requireCluster(); err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, serrors.NewInvalidArgument("コミット対象ウェイトが未指定です")
	}

	store := uc.cluster.Weights
	vertexIndexes := make([]int, 0, len(updates))
	for vertexIndex := range updates {
		vertexIndexes = append(vertexIndexes, vertexIndex)
	}
	sort.Ints(vertexIndexes)

	// ホスト側Undo境界用に編集前の状態を取得する。
	snapshot := store.WeightList(vertexIndexes...)
	reportApplyProgress(reporter, ApplyProgressEvent{
		Type:       ApplyProgressEventTypeSnapshotTaken,
		TotalCount: len(vertexIndexes),
	})

	restore := store.SuspendNormalizeOnWrite()
	defer func() {
		restore()
		reportApplyProgress(reporter, ApplyProgressEvent{
			Type:       ApplyProgressEventTypeNormalizeRestored,
			TotalCount: len(vertexIndexes),
		})
	}()
	reportApplyProgress(reporter, ApplyProgressEvent{
		Type:       ApplyProgressEventTypeNormalizeSuspended,
		TotalCount: len(vertexIndexes),
	})

	result := &ApplyResult{Snapshot: snapshot}
	for done, vertexIndex := range vertexIndexes {
		pruned := model.PruneWeights(
			updates[vertexIndex],
			store.PruneTolerance(),
			store.MaxInfluences(),
			uc.cluster.Influences.IsNullSlot,
		)
		normalized, err := model.NormalizeWeights(pruned)
		if err != nil {
			result.Failed = append(result.Failed, VertexError{VertexIndex: vertexIndex, Err: err})
			continue
		}
		// SetWeights が現在値との差分書き込みと不要項目の明示削除を行う。
		if err := store.SetWeights(vertexIndex, normalized); err != nil {
			result.Failed = append(result.Failed, VertexError{VertexIndex: vertexIndex, Err: err})
			continue
		}
		result.Committed = append(result.Committed, vertexIndex)
		reportApplyProgress(reporter, ApplyProgressEvent{
			Type:        ApplyProgressEventTypeVertexCommitted,
			VertexIndex: vertexIndex,
			DoneCount:   done + 1,
			TotalCount:  len(vertexIndexes),
		})
	}

	if uc.cacheInvalidator != nil {
		uc.cacheInvalidator.InvalidateWeightCache(result.Committed)
		reportApplyProgress(reporter, ApplyProgressEvent{
			Type:       ApplyProgressEventTypeCacheInvalidated,
			TotalCount: len(vertexIndexes),
		})
	}
	return result, nil
}

// ApplyEditResult は編集結果の Updates をコミットし、編集時の頂点単位エラーを引き継ぐ。
func (uc *SkinUsecase) ApplyEditResult(edit *EditResult, reporter IApplyProgressReporter) (*ApplyResult, error) {
	if edit == nil {
		return nil, serrors.NewInvalidArgument("編集結果が未設定です")
	}
	if len(edit.Updates) == 0 {
		if len(edit.Failed) > 0 {
			return &ApplyResult{Failed: edit.Failed}, nil
		}
		return nil, serrors.NewInvalidArgument("コミット対象ウェイトが未指定です")
	}
	result, err := uc.Apply(edit.Updates, reporter)
	if err != nil {
		return nil, err
	}
	result.Failed = append(result.Failed, edit.Failed...)
	return result, nil
}
