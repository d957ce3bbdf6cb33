// 指示: miu200521358
// Package falloff はソフト選択の減衰係数算出アダプタを提供する。
package falloff

import (
	"math"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/mmath"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
	"github.com/miu200521358/mu_skin_weights/pkg/usecase/port/soutput"
	"gopkg.in/Knetic/govaluate.v3"
)

// ExpressionFalloff は距離式による減衰係数を表す。
// 式は distance と radius を変数として評価され、結果は [0, 1] へ丸められる。
type ExpressionFalloff struct {
	expression *govaluate.EvaluableExpression
	radius     float64
}

// NewExpressionFalloff は減衰式を解析してExpressionFalloffを生成する。
func NewExpressionFalloff(expressionText string, radius float64) (*ExpressionFalloff, error) {
	if radius <= 0 {
		return nil, serrors.NewInvalidArgument("減衰半径は正の値を指定してください: %f", radius)
	}
	expression, err := govaluate.NewEvaluableExpression(expressionText)
	if err != nil {
		return nil, serrors.NewInvalidArgument("減衰式を解析できません: %s", expressionText)
	}
	return &ExpressionFalloff{expression: expression, radius: radius}, nil
}

// NewLinearFalloff は半径内で線形に減衰するExpressionFalloffを生成する。
func NewLinearFalloff(radius float64) (*ExpressionFalloff, error) {
	return NewExpressionFalloff("1.0 - distance / radius", radius)
}

// Radius は減衰半径を返す。
func (f *ExpressionFalloff) Radius() float64 {
	return f.radius
}

// Factor は中心からの距離に対する減衰係数を返す。半径外は 0 になる。
func (f *ExpressionFalloff) Factor(distance float64) (float64, error) {
	if distance < 0 {
		return 0, serrors.NewInvalidArgument("距離は非負の値を指定してください: %f", distance)
	}
	if distance >= f.radius {
		return 0, nil
	}
	result, err := f.expression.Evaluate(map[string]interface{}{
		"distance": distance,
		"radius":   f.radius,
	})
	if err != nil {
		return 0, serrors.NewInvalidArgument("減衰式の評価に失敗しました: %v", err)
	}
	value, ok := result.(float64)
	if !ok {
		return 0, serrors.NewInvalidArgument("減衰式の評価結果が数値ではありません: %v", result)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, serrors.NewInvalidArgument("減衰式の評価結果が不正です: %f", value)
	}
	return math.Max(0.0, math.Min(1.0, value)), nil
}

// CenterOfVertices は指定頂点位置の平均を減衰中心として返す。
func CenterOfVertices(topology soutput.IMeshTopology, vertexIndexes []int) (mmath.Vec3, error) {
	if topology == nil {
		return mmath.Vec3{}, serrors.NewInvalidArgument("トポロジー提供者が未設定です")
	}
	if len(vertexIndexes) == 0 {
		return mmath.Vec3{}, serrors.NewInvalidArgument("減衰中心の頂点が未指定です")
	}
	positions := make([]mmath.Vec3, 0, len(vertexIndexes))
	for _, vertexIndex := range vertexIndexes {
		position, err := topology.VertexPosition(vertexIndex)
		if err != nil {
			return mmath.Vec3{}, err
		}
		positions = append(positions, position)
	}
	return mmath.MeanVec3(positions...), nil
}

// BuildFalloffMap は中心位置からの距離に応じた頂点別の減衰マップを構築する。
func (f *ExpressionFalloff) BuildFalloffMap(
	topology soutput.IMeshTopology,
	center mmath.Vec3,
	vertexIndexes []int,
) (model.FalloffMap, error) {
	if topology == nil {
		return nil, serrors.NewInvalidArgument("トポロジー提供者が未設定です")
	}
	falloffMap := model.FalloffMap{}
	for _, vertexIndex := range vertexIndexes {
		position, err := topology.VertexPosition(vertexIndex)
		if err != nil {
			return nil, err
		}
		factor, err := f.Factor(center.Distance(position))
		if err != nil {
			return nil, err
		}
		falloffMap[vertexIndex] = factor
	}
	return falloffMap, nil
}
