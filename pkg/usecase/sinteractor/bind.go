// 指示: miu200521358
package sinteractor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

// PreBindMatrix はインフルエンスのバインド逆行列を返す。
func (uc *SkinUsecase) PreBindMatrix(influenceIndex int) (mgl64.Mat4, error) {
	if err := uc.requireCluster(); err != nil {
		return mgl64.Ident4(), err
	}
	return uc.cluster.Influences.PreBindMatrix(influenceIndex)
}

// SetPreBindMatrix はインフルエンスのバインド逆行列を設定する。
func (uc *SkinUsecase) SetPreBindMatrix(influenceIndex int, matrix mgl64.Mat4) error {
	if err := uc.requireCluster(); err != nil {
		return err
	}
	return uc.cluster.Influences.SetPreBindMatrix(influenceIndex, matrix)
}

// ResetPreBindMatrices は全インフルエンスのバインド逆行列を現在ワールド行列の逆行列で再設定する。
func (uc *SkinUsecase) ResetPreBindMatrices() error {
	if err := uc.requireCluster(); err != nil {
		return err
	}
	if uc.binding == nil {
		return serrors.NewInvalidArgument("インフルエンスバインド提供者が未設定です")
	}
	for _, influence := range uc.cluster.Influences.Values() {
		worldMatrix, err := uc.binding.WorldMatrix(influence.Index())
		if err != nil {
			return err
		}
		influence.SetBindInverseMatrix(worldMatrix.Inv())
	}
	return nil
}
