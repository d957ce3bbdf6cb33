// 指示: miu200521358
// Package soutput はスキンウェイト編集が外部へ要求する契約を提供する。
package soutput

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/mmath"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
)

// IMeshTopology はメッシュ接続情報の参照契約を表す。実装は外部が提供する。
type IMeshTopology interface {
	// ConnectedVertices は頂点に隣接する頂点index一覧を返す。
	ConnectedVertices(vertexIndex int) ([]int, error)
	// ConnectedEdges は頂点へ接続するエッジ一覧を頂点indexの組で返す。
	ConnectedEdges(vertexIndex int) ([][2]int, error)
	// ConnectedFaces は頂点を含む面index一覧を返す。
	ConnectedFaces(vertexIndex int) ([]int, error)
	// MirrorVertexIndex は対称面を挟んだミラー頂点indexを返す。
	MirrorVertexIndex(vertexIndex int, tolerance float64) (int, error)
	// ShortestEdgePath は2頂点間の最短エッジ経路を返す。
	ShortestEdgePath(startVertexIndex int, endVertexIndex int) ([]int, error)
	// VertexPosition は頂点位置を返す。
	VertexPosition(vertexIndex int) (mmath.Vec3, error)
	// FaceVertexIndexes は面を構成する頂点index一覧を返す。
	FaceVertexIndexes(faceIndex int) ([]int, error)
	// FaceNormal は面法線を返す。
	FaceNormal(faceIndex int) (mmath.Vec3, error)
}

// IInfluenceBinding はインフルエンスのワールド行列参照契約を表す。
type IInfluenceBinding interface {
	// WorldMatrix はインフルエンスの現在ワールド行列を返す。
	WorldMatrix(influenceIndex int) (mgl64.Mat4, error)
}

// ISelection は選択状態の参照契約を表す。
type ISelection interface {
	// ActiveVertexIndexes は選択中の頂点index一覧を返す。
	ActiveVertexIndexes() []int
	// SoftSelection はソフト選択の減衰マップを返す。無効時はnil。
	SoftSelection() model.FalloffMap
}

// INamingResolver は命名規約によるミラー名解決契約を表す。
type INamingResolver interface {
	// MirrorName は対称側の名前を返す。解決できない場合は false を返す。
	MirrorName(name string) (string, bool)
}

// IWeightCacheInvalidator はホスト側ウェイト表示キャッシュの無効化契約を表す。
type IWeightCacheInvalidator interface {
	// InvalidateWeightCache は指定頂点の表示キャッシュを無効化する。
	InvalidateWeightCache(vertexIndexes []int)
}

// SaveOptions は保存時のオプションを表す。
type SaveOptions struct {
	Indent bool
}

// ISkinReader はスキンファイルの読み込み契約を表す。
type ISkinReader interface {
	// CanLoad は拡張子に応じて読み込み可否を判定する。
	CanLoad(path string) bool
	// InferName はパスから表示名を推定する。
	InferName(path string) string
	// Load はスキンクラスタを読み込む。
	Load(path string) (*model.SkinCluster, error)
}

// ISkinWriter はスキンファイルの書き込み契約を表す。
type ISkinWriter interface {
	// Save はスキンクラスタを保存する。
	Save(path string, cluster *model.SkinCluster, options SaveOptions) error
}
