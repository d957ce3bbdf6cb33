// 指示: miu200521358
// Package topology は事前計算済みテーブル参照によるメッシュトポロジー提供者を提供する。
// 接続情報の算出自体はこの層では行わず、外部で構築されたテーブルの参照に限定する。
package topology

import (
	"fmt"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/mmath"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

// Tables は外部で構築済みのトポロジー参照テーブルを表す。
type Tables struct {
	Positions   map[int]mmath.Vec3
	Adjacency   map[int][]int
	Mirror      map[int]int
	Faces       [][]int
	FaceNormals map[int]mmath.Vec3
	Paths       map[[2]int][]int
}

// TableTopology はテーブル参照のみでメッシュトポロジー契約を満たす実装を表す。
type TableTopology struct {
	tables Tables
}

// NewTableTopology はテーブル参照トポロジーを生成する。
func NewTableTopology(tables Tables) *TableTopology {
	return &TableTopology{tables: tables}
}

// ConnectedVertices は頂点に隣接する頂点index一覧を返す。
func (t *TableTopology) ConnectedVertices(vertexIndex int) ([]int, error) {
	connected, exists := t.tables.Adjacency[vertexIndex]
	if !exists {
		return nil, serrors.NewInvalidArgument("隣接テーブルに頂点が存在しません: %d", vertexIndex)
	}
	return append([]int(nil), connected...), nil
}

// ConnectedEdges は頂点へ接続するエッジ一覧を頂点indexの組で返す。
func (t *TableTopology) ConnectedEdges(vertexIndex int) ([][2]int, error) {
	connected, err := t.ConnectedVertices(vertexIndex)
	if err != nil {
		return nil, err
	}
	edges := make([][2]int, 0, len(connected))
	for _, neighbor := range connected {
		edges = append(edges, [2]int{vertexIndex, neighbor})
	}
	return edges, nil
}

// ConnectedFaces は頂点を含む面index一覧を返す。
func (t *TableTopology) ConnectedFaces(vertexIndex int) ([]int, error) {
	if _, exists := t.tables.Positions[vertexIndex]; !exists {
		return nil, serrors.NewInvalidArgument("頂点位置が存在しません: %d", vertexIndex)
	}
	faceIndexes := []int(nil)
	for faceIndex, face := range t.tables.Faces {
		for _, faceVertexIndex := range face {
			if faceVertexIndex == vertexIndex {
				faceIndexes = append(faceIndexes, faceIndex)
				break
			}
		}
	}
	return faceIndexes, nil
}

// MirrorVertexIndex は対称面を挟んだミラー頂点indexを返す。
// ミラーテーブルに無い場合はX反転位置の許容誤差一致で照合する。
func (t *TableTopology) MirrorVertexIndex(vertexIndex int, tolerance float64) (int, error) {
	if mirrorIndex, exists := t.tables.Mirror[vertexIndex]; exists {
		return mirrorIndex, nil
	}
	position, exists := t.tables.Positions[vertexIndex]
	if !exists || tolerance <= 0 {
		return -1, serrors.NewInvalidArgument("ミラー頂点を解決できません: %d", vertexIndex)
	}
	mirrored := mmath.NewVec3(-position.X, position.Y, position.Z)
	for candidateIndex, candidate := range t.tables.Positions {
		if candidate.NearEquals(mirrored, tolerance) {
			return candidateIndex, nil
		}
	}
	return -1, serrors.NewInvalidArgument("ミラー頂点を解決できません: %d", vertexIndex)
}

// ShortestEdgePath は事前計算済みの最短エッジ経路を返す。
func (t *TableTopology) ShortestEdgePath(startVertexIndex int, endVertexIndex int) ([]int, error) {
	if path, exists := t.tables.Paths[[2]int{startVertexIndex, endVertexIndex}]; exists {
		return append([]int(nil), path...), nil
	}
	if path, exists := t.tables.Paths[[2]int{endVertexIndex, startVertexIndex}]; exists {
		reversed := make([]int, 0, len(path))
		for i := len(path) - 1; i >= 0; i-- {
			reversed = append(reversed, path[i])
		}
		return reversed, nil
	}
	return nil, serrors.NewInvalidArgument("経路テーブルに経路が存在しません: %d-%d", startVertexIndex, endVertexIndex)
}

// VertexPosition は頂点位置を返す。
func (t *TableTopology) VertexPosition(vertexIndex int) (mmath.Vec3, error) {
	position, exists := t.tables.Positions[vertexIndex]
	if !exists {
		return mmath.Vec3{}, serrors.NewInvalidArgument("頂点位置が存在しません: %d", vertexIndex)
	}
	return position, nil
}

// FaceVertexIndexes は面を構成する頂点index一覧を返す。
func (t *TableTopology) FaceVertexIndexes(faceIndex int) ([]int, error) {
	if faceIndex < 0 || faceIndex >= len(t.tables.Faces) {
		return nil, serrors.NewInvalidArgument("面indexが範囲外です: %d", faceIndex)
	}
	return append([]int(nil), t.tables.Faces[faceIndex]...), nil
}

// FaceNormal は面法線を返す。法線テーブルに無い場合は先頭3頂点の外積から求める。
func (t *TableTopology) FaceNormal(faceIndex int) (mmath.Vec3, error) {
	if normal, exists := t.tables.FaceNormals[faceIndex]; exists {
		return normal, nil
	}
	vertexIndexes, err := t.FaceVertexIndexes(faceIndex)
	if err != nil {
		return mmath.Vec3{}, err
	}
	if len(vertexIndexes) < 3 {
		return mmath.Vec3{}, serrors.NewInvalidArgument("法線を算出できない面です: %d", faceIndex)
	}
	p0, err := t.VertexPosition(vertexIndexes[0])
	if err != nil {
		return mmath.Vec3{}, err
	}
	p1, err := t.VertexPosition(vertexIndexes[1])
	if err != nil {
		return mmath.Vec3{}, err
	}
	p2, err := t.VertexPosition(vertexIndexes[2])
	if err != nil {
		return mmath.Vec3{}, err
	}
	normal := p1.Subed(p0).Cross(p2.Subed(p0)).Normalized()
	if normal.Length() <= 0 {
		return mmath.Vec3{}, serrors.NewInvalidArgument("面が退化しているため法線を算出できません: %d", faceIndex)
	}
	return normal, nil
}

// String はデバッグ用の概要を返す。
func (t *TableTopology) String() string {
	return fmt.Sprintf("TableTopology(vertices=%d, faces=%d)", len(t.tables.Positions), len(t.tables.Faces))
}
