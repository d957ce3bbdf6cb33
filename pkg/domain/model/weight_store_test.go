// 指示: miu200521358
package model

import (
	"math"
	"testing"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

// newWeightStoreFixture は3本バインド済みのクラスタを生成する。
func newWeightStoreFixture(t *testing.T) *SkinCluster {
	t.Helper()
	cluster := NewSkinCluster("mesh")
	for _, name := range []string{"左腕", "左ひじ", "左手首"} {
		if _, err := cluster.AddInfluence(name); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	return cluster
}

func TestWeightStoreSetWeightsNormalizesOnWrite(t *testing.T) {
	cluster := newWeightStoreFixture(t)
	if err := cluster.Weights.SetWeights(0, WeightMap{0: 1.0, 1: 3.0}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	weights, dropped := cluster.Weights.Weights(0)
	if len(dropped) != 0 {
		t.Fatalf("unexpected dropped: %v", dropped)
	}
	if math.Abs(weights[0]-0.25) > NormalizeTolerance || math.Abs(weights[1]-0.75) > NormalizeTolerance {
		t.Fatalf("weights not normalized: %v", weights)
	}
}

func TestWeightStoreSetWeightsRemovesResidueEntries(t *testing.T) {
	cluster := newWeightStoreFixture(t)
	if err := cluster.Weights.SetWeights(0, WeightMap{0: 0.5, 1: 0.3, 2: 0.2}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cluster.Weights.SetWeights(0, WeightMap{0: 0.6, 1: 0.4}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	weights, _ := cluster.Weights.Weights(0)
	if _, exists := weights[2]; exists {
		t.Fatalf("stale entry should be removed: %v", weights)
	}
	if len(weights) != 2 {
		t.Fatalf("weights size mismatch: %v", weights)
	}
}

func TestWeightStoreSetWeightsPrunesTinyValues(t *testing.T) {
	cluster := newWeightStoreFixture(t)
	restore := cluster.Weights.SuspendNormalizeOnWrite()
	defer restore()
	if err := cluster.Weights.SetWeights(0, WeightMap{0: 0.9999999, 1: 1e-9}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	weights, _ := cluster.Weights.Weights(0)
	if _, exists := weights[1]; exists {
		t.Fatalf("tiny weight should be dropped instead of stored as zero: %v", weights)
	}
}

func TestWeightStoreSetWeightsDeletesEmptyVertex(t *testing.T) {
	cluster := newWeightStoreFixture(t)
	restore := cluster.Weights.SuspendNormalizeOnWrite()
	defer restore()
	if err := cluster.Weights.SetWeights(0, WeightMap{0: 1.0}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cluster.Weights.SetWeights(0, WeightMap{}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if len(cluster.Weights.VertexIndexes()) != 0 {
		t.Fatalf("vertex should be removed: %v", cluster.Weights.VertexIndexes())
	}
}

func TestWeightStoreSetWeightsRejectsEmptyWhenNormalizing(t *testing.T) {
	cluster := newWeightStoreFixture(t)
	if err := cluster.Weights.SetWeights(0, WeightMap{}); !serrors.IsEmptyWeightSet(err) {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cluster.Weights.SetWeights(-1, WeightMap{0: 1.0}); !serrors.IsInvalidArgument(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWeightStoreSuspendNormalizeOnWriteRestores(t *testing.T) {
	cluster := newWeightStoreFixture(t)
	restore := cluster.Weights.SuspendNormalizeOnWrite()
	if cluster.Weights.NormalizeOnWrite() {
		t.Fatalf("normalize should be suspended")
	}
	if err := cluster.Weights.SetWeights(0, WeightMap{0: 0.5, 1: 1.5}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	weights, _ := cluster.Weights.Weights(0)
	if weights[1] != 1.5 {
		t.Fatalf("raw value should be stored while suspended: %v", weights)
	}
	restore()
	if !cluster.Weights.NormalizeOnWrite() {
		t.Fatalf("normalize should be restored")
	}
}

func TestWeightStoreWeightsDropsNullInfluenceEntries(t *testing.T) {
	cluster := newWeightStoreFixture(t)
	restore := cluster.Weights.SuspendNormalizeOnWrite()
	defer restore()
	// index 9 は未登録スロットのため読み出し時にnull扱いで除外される。
	if err := cluster.Weights.SetWeights(0, WeightMap{0: 0.5, 9: 0.5}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	weights, dropped := cluster.Weights.Weights(0)
	if len(dropped) != 1 || dropped[0] != 9 {
		t.Fatalf("dropped mismatch: %v", dropped)
	}
	if _, exists := weights[9]; exists {
		t.Fatalf("null influence weight should be dropped: %v", weights)
	}
	if weights[0] != 0.5 {
		t.Fatalf("valid weight should remain: %v", weights)
	}
}

func TestWeightStoreUsedIdsAndHasNonZeroWeight(t *testing.T) {
	cluster := newWeightStoreFixture(t)
	restore := cluster.Weights.SuspendNormalizeOnWrite()
	defer restore()
	if err := cluster.Weights.SetWeights(0, WeightMap{0: 0.5, 1: 0.5}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cluster.Weights.SetWeights(1, WeightMap{2: 1.0}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	used := cluster.Weights.UsedIds(nil)
	if len(used) != 3 {
		t.Fatalf("used ids mismatch: %v", used)
	}
	subset := cluster.Weights.UsedIds([]int{1})
	if len(subset) != 1 {
		t.Fatalf("subset mismatch: %v", subset)
	}
	if _, exists := subset[2]; !exists {
		t.Fatalf("subset should contain influence 2: %v", subset)
	}
	if !cluster.Weights.HasNonZeroWeight(0) {
		t.Fatalf("influence 0 should be in use")
	}
	if cluster.Weights.HasNonZeroWeight(9) {
		t.Fatalf("unknown influence should not be in use")
	}
}

func TestWeightStoreWeightListReturnsAllWhenUnspecified(t *testing.T) {
	cluster := newWeightStoreFixture(t)
	if err := cluster.Weights.SetWeights(0, WeightMap{0: 1.0}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cluster.Weights.SetWeights(5, WeightMap{1: 1.0}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	all := cluster.Weights.WeightList()
	if len(all) != 2 {
		t.Fatalf("list size mismatch: %v", all)
	}
	partial := cluster.Weights.WeightList(5, 7)
	if len(partial) != 2 {
		t.Fatalf("partial size mismatch: %v", partial)
	}
	if len(partial[7]) != 0 {
		t.Fatalf("unknown vertex should yield empty map: %v", partial[7])
	}
}
