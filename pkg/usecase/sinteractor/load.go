// 指示: miu200521358
package sinteractor

import (
	"strings"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
	"github.com/miu200521358/mu_skin_weights/pkg/usecase/port/soutput"
)

// LoadSkin はスキンクラスタを読み込んで編集対象へ設定する。
func (uc *SkinUsecase) LoadSkin(reader soutput.ISkinReader, path string) (*model.SkinCluster, error) {
	repo := reader
	if repo == nil {
		repo = uc.skinReader
	}
	if repo == nil {
		return nil, serrors.NewInvalidArgument("スキン読み込みリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return nil, serrors.NewInvalidArgument("読み込み元パスが未指定です")
	}
	cluster, err := repo.Load(path)
	if err != nil {
		return nil, err
	}
	uc.cluster = cluster
	return cluster, nil
}

// SaveSkin は編集対象のスキンクラスタを保存する。
func (uc *SkinUsecase) SaveSkin(writer soutput.ISkinWriter, path string, options soutput.SaveOptions) error {
	repo := writer
	if repo == nil {
		repo = uc.skinWriter
	}
	if repo == nil {
		return serrors.NewInvalidArgument("スキン保存リポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return serrors.NewInvalidArgument("保存先パスが未指定です")
	}
	if err := uc.requireCluster(); err != nil {
		return err
	}
	return repo.Save(path, uc.cluster, options)
}
