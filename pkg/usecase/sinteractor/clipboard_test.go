// 指示: miu200521358
package sinteractor

import (
	"testing"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

func TestCopyWeightsKeepsValueSnapshot(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 0.4, 1: 0.6})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	if err := uc.CopyWeights([]int{0}); err != nil {
		t.Fatalf("コピーに失敗: %v", err)
	}
	if uc.ClipboardLen() != 1 {
		t.Fatalf("クリップボード件数不一致: %d", uc.ClipboardLen())
	}

	// コピー後にコピー元を書き換えても貼り付け内容は変わらない。
	seedVertexWeights(t, cluster, 0, model.WeightMap{2: 1.0})
	result, err := uc.PasteWeights([]int{5})
	if err != nil {
		t.Fatalf("貼り付けに失敗: %v", err)
	}
	assertWeightsNear(t, result.Updates[5], model.WeightMap{0: 0.4, 1: 0.6})
}

func TestCopyWeightsWithEmptySelectionClearsClipboard(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 1.0})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	if err := uc.CopyWeights([]int{0}); err != nil {
		t.Fatalf("コピーに失敗: %v", err)
	}
	if err := uc.CopyWeights(nil); err != nil {
		t.Fatalf("クリアに失敗: %v", err)
	}
	if uc.ClipboardLen() != 0 {
		t.Fatalf("クリップボードが消去されていません: %d", uc.ClipboardLen())
	}
}

func TestPasteWeightsMatchesPairwise(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 1.0})
	seedVertexWeights(t, cluster, 1, model.WeightMap{1: 1.0})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	if err := uc.CopyWeights([]int{0, 1}); err != nil {
		t.Fatalf("コピーに失敗: %v", err)
	}
	result, err := uc.PasteWeights([]int{10, 11})
	if err != nil {
		t.Fatalf("貼り付けに失敗: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("件数一致の貼り付けで警告が発生: %v", result.Warnings)
	}
	assertWeightsNear(t, result.Updates[10], model.WeightMap{0: 1.0})
	assertWeightsNear(t, result.Updates[11], model.WeightMap{1: 1.0})
}

func TestPasteWeightsBroadcastsFirstEntry(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 1.0})
	seedVertexWeights(t, cluster, 1, model.WeightMap{1: 1.0})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	if err := uc.CopyWeights([]int{0, 1}); err != nil {
		t.Fatalf("コピーに失敗: %v", err)
	}
	result, err := uc.PasteWeights([]int{10, 11, 12})
	if err != nil {
		t.Fatalf("貼り付けに失敗: %v", err)
	}
	// 件数不一致時は先頭コピーを全対象へ配布し、頂点ごとに警告する。
	if len(result.Warnings) != 3 {
		t.Fatalf("ブロードキャスト警告数不一致: %v", result.Warnings)
	}
	for _, warning := range result.Warnings {
		if warning.WarningID != model.SkinWarningClipboardBroadcast {
			t.Fatalf("警告ID不一致: %v", warning)
		}
	}
	for _, vertexIndex := range []int{10, 11, 12} {
		assertWeightsNear(t, result.Updates[vertexIndex], model.WeightMap{0: 1.0})
	}
}

func TestPasteWeightsCopiesAreIndependent(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 1.0})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	if err := uc.CopyWeights([]int{0}); err != nil {
		t.Fatalf("コピーに失敗: %v", err)
	}
	result, err := uc.PasteWeights([]int{10, 11})
	if err != nil {
		t.Fatalf("貼り付けに失敗: %v", err)
	}
	result.Updates[10][3] = 0.5
	assertWeightsNear(t, result.Updates[11], model.WeightMap{0: 1.0})
}

func TestPasteWeightsRejectsEmptyClipboard(t *testing.T) {
	uc := NewSkinUsecase(newArmCluster(t), SkinUsecaseDeps{})
	if _, err := uc.PasteWeights([]int{0}); !serrors.IsInvalidArgument(err) {
		t.Fatalf("空クリップボードのエラーが返りません: %v", err)
	}
}

func TestPasteAveragedWeightsBlendsClipboard(t *testing.T) {
	cluster := newArmCluster(t)
	seedVertexWeights(t, cluster, 0, model.WeightMap{0: 1.0})
	seedVertexWeights(t, cluster, 1, model.WeightMap{1: 1.0})
	uc := NewSkinUsecase(cluster, SkinUsecaseDeps{})

	if err := uc.CopyWeights([]int{0, 1}); err != nil {
		t.Fatalf("コピーに失敗: %v", err)
	}
	result, err := uc.PasteAveragedWeights([]int{10, 11})
	if err != nil {
		t.Fatalf("平均貼り付けに失敗: %v", err)
	}
	expected := model.WeightMap{0: 0.5, 1: 0.5}
	assertWeightsNear(t, result.Updates[10], expected)
	assertWeightsNear(t, result.Updates[11], expected)
}
