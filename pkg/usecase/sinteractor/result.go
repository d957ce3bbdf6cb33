// 指示: miu200521358
package sinteractor

import "github.com/miu200521358/mu_skin_weights/pkg/domain/model"

// VertexError は頂点単位で発生したエラーを表す。
type VertexError struct {
	VertexIndex int
	Err         error
}

// VertexWarning は頂点単位で発生した警告を表す。
type VertexWarning struct {
	VertexIndex int
	WarningID   string
}

// EditResult はウェイト編集の計算結果を表す。
// Updates は未コミットであり、呼び出し側が Apply へ渡して永続化する。
type EditResult struct {
	Updates  map[int]model.WeightMap
	Failed   []VertexError
	Warnings []VertexWarning
}

// newEditResult は空の編集結果を生成する。
func newEditResult() *EditResult {
	return &EditResult{Updates: map[int]model.WeightMap{}}
}

// addFailed は頂点単位エラーを追加する。
func (r *EditResult) addFailed(vertexIndex int, err error) {
	r.Failed = append(r.Failed, VertexError{VertexIndex: vertexIndex, Err: err})
}

// addWarning は頂点単位警告を追加する。
func (r *EditResult) addWarning(vertexIndex int, warningID string) {
	r.Warnings = append(r.Warnings, VertexWarning{VertexIndex: vertexIndex, WarningID: warningID})
}

// ApplyProgressEventType はコミット処理の進捗イベント種別を表す。
type ApplyProgressEventType string

const (
	// ApplyProgressEventTypeSnapshotTaken は編集前スナップショット取得完了イベントを表す。
	ApplyProgressEventTypeSnapshotTaken ApplyProgressEventType = "snapshot_taken"
	// ApplyProgressEventTypeNormalizeSuspended は自動正規化停止イベントを表す。
	ApplyProgressEventTypeNormalizeSuspended ApplyProgressEventType = "normalize_suspended"
	// ApplyProgressEventTypeVertexCommitted は頂点書き込み進行イベントを表す。
	ApplyProgressEventTypeVertexCommitted ApplyProgressEventType = "vertex_committed"
	// ApplyProgressEventTypeNormalizeRestored は自動正規化復元イベントを表す。
	ApplyProgressEventTypeNormalizeRestored ApplyProgressEventType = "normalize_restored"
	// ApplyProgressEventTypeCacheInvalidated は表示キャッシュ無効化完了イベントを表す。
	ApplyProgressEventTypeCacheInvalidated ApplyProgressEventType = "cache_invalidated"
)

// ApplyProgressEvent はコミット処理の進捗イベントを表す。
type ApplyProgressEvent struct {
	Type        ApplyProgressEventType
	VertexIndex int
	DoneCount   int
	TotalCount  int
}

// IApplyProgressReporter はコミット処理の進捗通知契約を表す。
type IApplyProgressReporter interface {
	// ReportApplyProgress はコミット進捗を通知する。
	ReportApplyProgress(event ApplyProgressEvent)
}

// reportApplyProgress はコミット処理の進捗を通知する。
func reportApplyProgress(reporter IApplyProgressReporter, event ApplyProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportApplyProgress(event)
}

// ApplyResult はコミット結果を表す。
type ApplyResult struct {
	Committed []int
	Failed    []VertexError
	Snapshot  map[int]model.WeightMap
}
