// 指示: miu200521358
// Package model はスキンウェイト編集のドメインモデルを提供する。
package model

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

// SkinCluster はメッシュ1枚分のスキンバインドを表す集約。
// インフルエンス一覧とウェイトストアを所有する。
type SkinCluster struct {
	Name       string
	Influences *InfluenceRegistry
	Weights    *WeightStore
}

// NewSkinCluster はスキンクラスタを生成する。
func NewSkinCluster(name string) *SkinCluster {
	registry := NewInfluenceRegistry()
	return &SkinCluster{
		Name:       name,
		Influences: registry,
		Weights:    NewWeightStore(registry),
	}
}

// AddInfluence は名前指定でインフルエンスを追加してindexを返す。
func (c *SkinCluster) AddInfluence(name string) (int, error) {
	return c.Influences.Add(NewInfluence(name))
}

// AddInfluenceWithBindMatrix はバインド逆行列付きでインフルエンスを追加する。
func (c *SkinCluster) AddInfluenceWithBindMatrix(name string, bindInverse mgl64.Mat4) (int, error) {
	influence := NewInfluence(name)
	influence.SetBindInverseMatrix(bindInverse)
	return c.Influences.Add(influence)
}

// RemoveInfluence はインフルエンスを削除する。
// いずれかの頂点がウェイトを保持している場合は InfluenceInUse で失敗する。
// スロットはnull化され、他インフルエンスのindexは変化しない。
func (c *SkinCluster) RemoveInfluence(index int) error {
	influence, err := c.Influences.Get(index)
	if err != nil {
		return err
	}
	if c.Weights.HasNonZeroWeight(index) {
		return serrors.NewInfluenceInUse("ウェイト参照中のインフルエンスは削除できません: %s(%d)", influence.Name(), index)
	}
	return c.Influences.markNull(index)
}

// UsedInfluenceIds は実際にウェイトを保持するインフルエンスindex集合を返す。
func (c *SkinCluster) UsedInfluenceIds(vertexSubset []int) map[int]struct{} {
	return c.Weights.UsedIds(vertexSubset)
}
