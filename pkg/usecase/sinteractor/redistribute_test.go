// 指示: miu200521358
package sinteractor

import (
	"testing"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

func TestSetVertexWeightsPullsFromSource(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 0.5, 1: 0.5})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	result, err := uc.SetVertexWeights([]int{0}, 0, []int{1}, 0.8, nil)
	if err != nil {
		t.Fatalf("設定に失敗: %v", err)
	}
	if len(result.Failed) != 0 {
		t.Fatalf("失敗頂点が発生: %v", result.Failed)
	}
	assertWeightsNear(t, result.Updates[0], model.WeightMap{0: 0.8, 1: 0.2})
}

func TestSetVertexWeightsDistributesProportionally(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 0.2, 1: 0.4, 2: 0.4})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	result, err := uc.SetVertexWeights([]int{0}, 0, []int{1, 2}, 0.6, nil)
	if err != nil {
		t.Fatalf("設定に失敗: %v", err)
	}
	// 増分0.4を再配分元の保持比率(0.4:0.4)で均等に奪う。
	assertWeightsNear(t, result.Updates[0], model.WeightMap{0: 0.6, 1: 0.2, 2: 0.2})
}

func TestSetVertexWeightsReturnsToSourceOnDecrease(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 0.8, 1: 0.2})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	result, err := uc.SetVertexWeights([]int{0}, 0, []int{1}, 0.5, nil)
	if err != nil {
		t.Fatalf("設定に失敗: %v", err)
	}
	assertWeightsNear(t, result.Updates[0], model.WeightMap{0: 0.5, 1: 0.5})
}

func TestSetVertexWeightsClampsToSourceHolding(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 0.5, 1: 0.2, 2: 0.3})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	// 再配分元が0.2しか持たないため1.0指定でも0.7止まり。指定外の0.3へは触れない。
	result, err := uc.SetVertexWeights([]int{0}, 0, []int{1}, 1.0, nil)
	if err != nil {
		t.Fatalf("設定に失敗: %v", err)
	}
	assertWeightsNear(t, result.Updates[0], model.WeightMap{0: 0.7, 2: 0.3})
}

func TestSetVertexWeightsRejectsNewInfluenceAtCap(t *testing.T) {
	cluster := newArmCluster(t)
	cluster.Weights.SetMaxInfluences(1)
	seedVertexWeights(t, cluster, 0, model.WeightMap{1: 1.0})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	result, err := uc.SetVertexWeights([]int{0}, 0, []int{1}, 0.3, nil)
	if err != nil {
		t.Fatalf("設定に失敗: %v", err)
	}
	if len(result.Updates) != 0 {
		t.Fatalf("上限超過なのに更新が生成されました: %v", result.Updates)
	}
	if len(result.Failed) != 1 || !serrors.IsMaxInfluencesExceeded(result.Failed[0].Err) {
		t.Fatalf("上限超過エラーが返りません: %v", result.Failed)
	}

	stored, _ := cluster.Weights.Weights(0)
	assertWeightsNear(t, stored, model.WeightMap{1: 1.0})
}

func TestSetVertexWeightsReplacesAllSourcesAtCap(t *testing.T) {
	cluster := newArmCluster(t)
	cluster.Weights.SetMaxInfluences(1)
	seedVertexWeights(t, cluster, 0, model.WeightMap{1: 1.0})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	// 再配分元の全量と一致する指定は総数を増やさない置換として成立する。
	result, err := uc.SetVertexWeights([]int{0}, 0, []int{1}, 1.0, nil)
	if err != nil {
		t.Fatalf("設定に失敗: %v", err)
	}
	if len(result.Failed) != 0 {
		t.Fatalf("失敗頂点が発生: %v", result.Failed)
	}
	assertWeightsNear(t, result.Updates[0], model.WeightMap{0: 1.0})
}

func TestSetVertexWeightsWarnsWithoutSourceHolding(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 1.0})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	result, err := uc.SetVertexWeights([]int{0}, 0, []int{1}, 0.5, nil)
	if err != nil {
		t.Fatalf("設定に失敗: %v", err)
	}
	if len(result.Updates) != 0 {
		t.Fatalf("配分不能なのに更新が生成されました: %v", result.Updates)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].WarningID != model.SkinWarningRedistributeNoSource {
		t.Fatalf("配分元不足の警告が返りません: %v", result.Warnings)
	}
}

func TestSetVertexWeightsAppliesFalloff(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 0.2, 1: 0.8})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	result, err := uc.SetVertexWeights([]int{0}, 0, []int{1}, 1.0, model.FalloffMap{0: 0.5})
	if err != nil {
		t.Fatalf("設定に失敗: %v", err)
	}
	assertWeightsNear(t, result.Updates[0], model.WeightMap{0: 0.5, 1: 0.5})
}

func TestSetVertexWeightsRejectsInvalidArguments(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 1.0})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	if _, err := uc.SetVertexWeights(nil, 0, []int{1}, 0.5, nil); !serrors.IsInvalidArgument(err) {
		t.Fatalf("頂点未指定のエラーが返りません: %v", err)
	}
	if _, err := uc.SetVertexWeights([]int{0}, 0, nil, 0.5, nil); !serrors.IsInvalidArgument(err) {
		t.Fatalf("再配分元未指定のエラーが返りません: %v", err)
	}
	if _, err := uc.SetVertexWeights([]int{0}, 99, []int{1}, 0.5, nil); !serrors.IsInfluenceNotFound(err) {
		t.Fatalf("未登録対象のエラーが返りません: %v", err)
	}
	if _, err := uc.SetVertexWeights([]int{0}, 0, []int{99}, 0.5, nil); !serrors.IsInfluenceNotFound(err) {
		t.Fatalf("未登録再配分元のエラーが返りません: %v", err)
	}
	if _, err := uc.SetVertexWeights([]int{0}, 0, []int{0}, 0.5, nil); !serrors.IsInvalidArgument(err) {
		t.Fatalf("対象と再配分元の重複エラーが返りません: %v", err)
	}
	if _, err := uc.SetVertexWeights([]int{0}, 0, []int{1, 1}, 0.5, nil); !serrors.IsInvalidArgument(err) {
		t.Fatalf("再配分元重複のエラーが返りません: %v", err)
	}
	if _, err := uc.SetVertexWeights([]int{0}, 0, []int{1}, -0.1, nil); !serrors.IsInvalidArgument(err) {
		t.Fatalf("負量のエラーが返りません: %v", err)
	}
	if _, err := uc.SetVertexWeights([]int{0}, 0, []int{1}, 1.5, nil); !serrors.IsInvalidArgument(err) {
		t.Fatalf("超過量のエラーが返りません: %v", err)
	}
}

func TestSetVertexWeightsIsIdempotentAfterApply(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 0.5, 1: 0.5})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	result, err := uc.SetVertexWeights([]int{0}, 0, []int{1}, 0.8, nil)
	if err != nil {
		t.Fatalf("設定に失敗: %v", err)
	}
	if _, err := uc.Apply(result.Updates, nil); err != nil {
		t.Fatalf("コミットに失敗: %v", err)
	}

	again, err := uc.SetVertexWeights([]int{0}, 0, []int{1}, 0.8, nil)
	if err != nil {
		t.Fatalf("再設定に失敗: %v", err)
	}
	if len(again.Updates) != 0 {
		t.Fatalf("同量の再設定で更新が生成されました: %v", again.Updates)
	}
}

func TestScaleVertexWeightsScalesChangeOnly(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 0.4, 1: 0.6})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	result, err := uc.ScaleVertexWeights([]int{0}, 0, []int{1}, 1.5, nil)
	if err != nil {
		t.Fatalf("拡縮に失敗: %v", err)
	}
	assertWeightsNear(t, result.Updates[0], model.WeightMap{0: 0.6, 1: 0.4})
}

func TestScaleVertexWeightsRejectsNegativePercent(t *testing.T) {
	cluster := newArmCluster(t)
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})
	if _, err := uc.ScaleVertexWeights([]int{0}, 0, []int{1}, -0.5, nil); !serrors.IsInvalidArgument(err) {
		t.Fatalf("負率のエラーが返りません: %v", err)
	}
}

func TestIncrementVertexWeightsAddsDelta(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 0.4, 1: 0.6})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	result, err := uc.IncrementVertexWeights([]int{0}, 0, []int{1}, 0.1, nil)
	if err != nil {
		t.Fatalf("加算に失敗: %v", err)
	}
	assertWeightsNear(t, result.Updates[0], model.WeightMap{0: 0.5, 1: 0.5})
}

func TestIncrementVertexWeightsClampsToUnitRange(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 0.4, 1: 0.6})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	result, err := uc.IncrementVertexWeights([]int{0}, 0, []int{1}, 2.0, nil)
	if err != nil {
		t.Fatalf("加算に失敗: %v", err)
	}
	assertWeightsNear(t, result.Updates[0], model.WeightMap{0: 1.0})

	result, err = uc.IncrementVertexWeights([]int{0}, 0, []int{1}, -2.0, nil)
	if err != nil {
		t.Fatalf("減算に失敗: %v", err)
	}
	assertWeightsNear(t, result.Updates[0], model.WeightMap{1: 1.0})
}

func TestIncrementVertexWeightsDecrementsIntoSource(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 0.4, 1: 0.6})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	result, err := uc.IncrementVertexWeights([]int{0}, 0, []int{1}, -0.2, nil)
	if err != nil {
		t.Fatalf("減算に失敗: %v", err)
	}
	assertWeightsNear(t, result.Updates[0], model.WeightMap{0: 0.2, 1: 0.8})
}
