// 指示: miu200521358
package sinteractor

import (
	"math"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/mmath"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

// Average は複数ウェイトの単純平均を正規化して返す。
func Average(weightMaps []model.WeightMap) (model.WeightMap, error) {
	if len(weightMaps) == 0 {
		return nil, serrors.NewInvalidArgument("平均対象ウェイトが未指定です")
	}
	uniform := make([]float64, len(weightMaps))
	for i := range uniform {
		uniform[i] = 1.0 / float64(len(weightMaps))
	}
	return WeightedAverage(weightMaps, uniform)
}

// WeightedAverage は比率指定の加重平均を正規化して返す。比率の総和は1.0でなければならない。
func WeightedAverage(weightMaps []model.WeightMap, ratios []float64) (model.WeightMap, error) {
	if len(weightMaps) == 0 {
		return nil, serrors.NewInvalidArgument("平均対象ウェイトが未指定です")
	}
	if len(weightMaps) != len(ratios) {
		return nil, serrors.NewInvalidArgument("ウェイト数(%d)と比率数(%d)が一致しません", len(weightMaps), len(ratios))
	}
	ratioSum := 0.0
	for _, ratio := range ratios {
		ratioSum += ratio
	}
	if math.Abs(ratioSum-1.0) >= model.NormalizeTolerance {
		return nil, serrors.NewInvalidArgument("比率の総和が1.0ではありません: %f", ratioSum)
	}

	blended := model.WeightMap{}
	for i, weights := range weightMaps {
		for index, weight := range weights {
			blended[index] += weight * ratios[i]
		}
	}
	return model.NormalizeWeights(blended)
}

// LinearBlend は2ウェイト間の線形補間を返す。t=0でa、t=1でbをそれぞれ正規化した結果になる。
func LinearBlend(a model.WeightMap, b model.WeightMap, t float64) (model.WeightMap, error) {
	return WeightedAverage([]model.WeightMap{a, b}, []float64{1.0 - t, t})
}

// InverseDistanceBlend は距離の逆2乗で加重平均したウェイトを返す。
// 距離0の要素がある場合はそのウェイトをそのまま返す。
func InverseDistanceBlend(weightMaps []model.WeightMap, distances []float64) (model.WeightMap, error) {
	if len(weightMaps) == 0 {
		return nil, serrors.NewInvalidArgument("補間対象ウェイトが未指定です")
	}
	if len(weightMaps) != len(distances) {
		return nil, serrors.NewInvalidArgument("ウェイト数(%d)と距離数(%d)が一致しません", len(weightMaps), len(distances))
	}
	for i, distance := range distances {
		if distance < 0 {
			return nil, serrors.NewInvalidArgument("距離が負値です: %f", distance)
		}
		if distance == 0 {
			return weightMaps[i], nil
		}
	}

	blended := model.WeightMap{}
	inverseSum := 0.0
	for i, weights := range weightMaps {
		inverse := 1.0 / (distances[i] * distances[i])
		inverseSum += inverse
		for index, weight := range weights {
			blended[index] += weight * inverse
		}
	}
	for index, weight := range blended {
		blended[index] = weight / inverseSum
	}
	return blended, nil
}

// Barycentric は三角形内の重心座標でウェイトを補間して返す。
func Barycentric(
	weightMaps [3]model.WeightMap,
	points [3]mmath.Vec3,
	point mmath.Vec3,
) (model.WeightMap, error) {
	v0 := points[1].Subed(points[0])
	v1 := points[2].Subed(points[0])
	v2 := point.Subed(points[0])

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < 1e-12 {
		return nil, serrors.NewInvalidArgument("三角形が退化しているため重心座標を解けません")
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1.0 - v - w

	return WeightedAverage(weightMaps[:], []float64{u, v, w})
}

// Bilinear は四角形面上の位置から(u,v)を求め、2段階の線形補間でウェイトを返す。
// 頂点順は 0-1-2-3 の周回とし、エッジ0-1と3-2をu方向として扱う。
func Bilinear(
	weightMaps [4]model.WeightMap,
	points [4]mmath.Vec3,
	normal mmath.Vec3,
	point mmath.Vec3,
) (model.WeightMap, error) {
	u := opposingEdgeParameter(points[0], points[3], points[1], points[2], normal, point)
	v := opposingEdgeParameter(points[0], points[1], points[3], points[2], normal, point)

	bottom, err := LinearBlend(weightMaps[0], weightMaps[1], u)
	if err != nil {
		return nil, err
	}
	top, err := LinearBlend(weightMaps[3], weightMaps[2], u)
	if err != nil {
		return nil, err
	}
	return LinearBlend(bottom, top, v)
}

// opposingEdgeParameter は対向する2エッジの接平面からの距離比で[0,1]のパラメータを返す。
func opposingEdgeParameter(
	edgeAStart mmath.Vec3,
	edgeAEnd mmath.Vec3,
	edgeBStart mmath.Vec3,
	edgeBEnd mmath.Vec3,
	normal mmath.Vec3,
	point mmath.Vec3,
) float64 {
	distanceA := edgePlaneDistance(edgeAStart, edgeAEnd, normal, point)
	distanceB := edgePlaneDistance(edgeBStart, edgeBEnd, normal, point)
	total := distanceA + distanceB
	if total <= 1e-12 {
		return 0.5
	}
	parameter := distanceA / total
	if parameter < 0 {
		return 0
	}
	if parameter > 1 {
		return 1
	}
	return parameter
}

// edgePlaneDistance はエッジと面法線の張る接平面から点までの距離を返す。
func edgePlaneDistance(edgeStart mmath.Vec3, edgeEnd mmath.Vec3, normal mmath.Vec3, point mmath.Vec3) float64 {
	planeNormal := edgeEnd.Subed(edgeStart).Cross(normal).Normalized()
	if planeNormal.Length() <= 1e-12 {
		return 0
	}
	return math.Abs(point.Subed(edgeStart).Dot(planeNormal))
}

// AverageVertexWeights は指定頂点の保存済みウェイトを平均したウェイトを返す。
func (uc *SkinUsecase) AverageVertexWeights(vertexIndexes []int) (model.WeightMap, error) {
	if err := uc.requireCluster(); err != nil {
		return nil, err
	}
	if err := requireVertices(vertexIndexes); err != nil {
		return nil, err
	}
	weightMaps := make([]model.WeightMap, 0, len(vertexIndexes))
	for _, vertexIndex := range vertexIndexes {
		weights, _ := uc.cluster.Weights.Weights(vertexIndex)
		weightMaps = append(weightMaps, weights)
	}
	return Average(weightMaps)
}
