// 指示: miu200521358
// Package sinteractor はスキンウェイト編集のユースケースを提供する。
package sinteractor

import (
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
	"github.com/miu200521358/mu_skin_weights/pkg/usecase/port/soutput"
)

// SkinUsecaseDeps はスキンウェイト編集ユースケースの依存を表す。
type SkinUsecaseDeps struct {
	Topology         soutput.IMeshTopology
	Binding          soutput.IInfluenceBinding
	Naming           soutput.INamingResolver
	Selection        soutput.ISelection
	CacheInvalidator soutput.IWeightCacheInvalidator
	SkinReader       soutput.ISkinReader
	SkinWriter       soutput.ISkinWriter
}

// SkinUsecase はスキンウェイト編集処理をまとめたユースケースを表す。
type SkinUsecase struct {
	cluster          *model.SkinCluster
	topology         soutput.IMeshTopology
	binding          soutput.IInfluenceBinding
	naming           soutput.INamingResolver
	selection        soutput.ISelection
	cacheInvalidator soutput.IWeightCacheInvalidator
	skinReader       soutput.ISkinReader
	skinWriter       soutput.ISkinWriter
	clipboard        []clipboardEntry
}

// NewSkinUsecase はスキンウェイト編集ユースケースを生成する。
func NewSkinUsecase(cluster *model.SkinCluster, deps SkinUsecaseDeps) *SkinUsecase {
	return &SkinUsecase{
		cluster:          cluster,
		topology:         deps.Topology,
		binding:          deps.Binding,
		naming:           deps.Naming,
		selection:        deps.Selection,
		cacheInvalidator: deps.CacheInvalidator,
		skinReader:       deps.SkinReader,
		skinWriter:       deps.SkinWriter,
	}
}

// Cluster は編集対象のスキンクラスタを返す。
func (uc *SkinUsecase) Cluster() *model.SkinCluster {
	return uc.cluster
}

// requireCluster は編集対象クラスタの設定を検証する。
func (uc *SkinUsecase) requireCluster() error {
	if uc.cluster == nil || uc.cluster.Influences == nil || uc.cluster.Weights == nil {
		return serrors.NewInvalidArgument("編集対象スキンクラスタが未設定です")
	}
	return nil
}

// requireVertices は頂点指定を検証する。
func requireVertices(vertexIndexes []int) error {
	if len(vertexIndexes) == 0 {
		return serrors.NewInvalidArgument("対象頂点が未指定です")
	}
	return nil
}
