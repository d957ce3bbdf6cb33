// 指示: miu200521358
package model

// FalloffMap は頂点ごとの編集倍率(ソフト選択強度)を表す。
// 未登録頂点の倍率は1.0とする。
type FalloffMap map[int]float64

// Factor は頂点の編集倍率を返す。nilマップ・未登録頂点は1.0。
func (f FalloffMap) Factor(vertexIndex int) float64 {
	if f == nil {
		return 1.0
	}
	factor, exists := f[vertexIndex]
	if !exists {
		return 1.0
	}
	return factor
}
