// 指示: miu200521358
package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
)

func TestInfluenceRegistryAddAssignsSequentialIndexes(t *testing.T) {
	registry := NewInfluenceRegistry()
	for i, name := range []string{"左腕", "左ひじ", "左手首"} {
		index, err := registry.Add(NewInfluence(name))
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if index != i {
			t.Fatalf("index mismatch: got=%d want=%d", index, i)
		}
	}
	if registry.Len() != 3 {
		t.Fatalf("len mismatch: %d", registry.Len())
	}
}

func TestInfluenceRegistryRejectsDuplicateName(t *testing.T) {
	registry := NewInfluenceRegistry()
	if _, err := registry.Add(NewInfluence("左腕")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := registry.Add(NewInfluence("左腕")); !serrors.IsInvalidArgument(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInfluenceRegistryRejectsEmptyName(t *testing.T) {
	registry := NewInfluenceRegistry()
	if _, err := registry.Add(NewInfluence("  ")); !serrors.IsInvalidArgument(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInfluenceRegistryGetByNameFoldsWidth(t *testing.T) {
	registry := NewInfluenceRegistry()
	if _, err := registry.Add(NewInfluence("Arm01")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	influence, err := registry.GetByName("Ａｒｍ０１")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if influence.Name() != "Arm01" {
		t.Fatalf("name mismatch: %s", influence.Name())
	}
}

func TestSkinClusterRemoveInfluenceKeepsIndexesStable(t *testing.T) {
	cluster := NewSkinCluster("mesh")
	for _, name := range []string{"左腕", "左ひじ", "左手首"} {
		if _, err := cluster.AddInfluence(name); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	if err := cluster.RemoveInfluence(1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if _, err := cluster.Influences.Get(1); !serrors.IsInfluenceNotFound(err) {
		t.Fatalf("unexpected error: %v", err)
	}
	wrist, err := cluster.Influences.Get(2)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if wrist.Name() != "左手首" {
		t.Fatalf("index was reassigned: %s", wrist.Name())
	}
	if !cluster.Influences.IsNullSlot(1) {
		t.Fatalf("removed slot should be null")
	}
}

func TestSkinClusterAddInfluenceReusesNullSlot(t *testing.T) {
	cluster := NewSkinCluster("mesh")
	for _, name := range []string{"左腕", "左ひじ", "左手首"} {
		if _, err := cluster.AddInfluence(name); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	if err := cluster.RemoveInfluence(1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	index, err := cluster.AddInfluence("左肩")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if index != 1 {
		t.Fatalf("null slot should be reused: got=%d", index)
	}
	if cluster.Influences.Len() != 3 {
		t.Fatalf("len mismatch: %d", cluster.Influences.Len())
	}
}

func TestSkinClusterRemoveInfluenceInUseFails(t *testing.T) {
	cluster := NewSkinCluster("mesh")
	if _, err := cluster.AddInfluence("左腕"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := cluster.AddInfluence("左ひじ"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := cluster.Weights.SetWeights(0, WeightMap{0: 0.5, 1: 0.5}); err != nil {
		t.Fatalf("set weights failed: %v", err)
	}

	if err := cluster.RemoveInfluence(0); !serrors.IsInfluenceInUse(err) {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cluster.Weights.SetWeights(0, WeightMap{1: 1.0}); err != nil {
		t.Fatalf("set weights failed: %v", err)
	}
	if err := cluster.RemoveInfluence(0); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
}

func TestInfluenceRegistryRestoreSlotRebuildsSparseSlots(t *testing.T) {
	registry := NewInfluenceRegistry()
	if err := registry.RestoreSlot(2, NewInfluence("左手首"), false); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if err := registry.RestoreSlot(0, NewInfluence("左腕"), false); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if registry.Len() != 3 {
		t.Fatalf("len mismatch: %d", registry.Len())
	}
	if !registry.IsNullSlot(1) {
		t.Fatalf("gap slot should be null")
	}
	wrist, err := registry.Get(2)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if wrist.Index() != 2 {
		t.Fatalf("index mismatch: %d", wrist.Index())
	}
	if err := registry.RestoreSlot(0, NewInfluence("別名"), false); !serrors.IsInvalidArgument(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInfluenceRegistryRootInfluence(t *testing.T) {
	registry := NewInfluenceRegistry()
	if _, err := registry.Add(NewInfluence("左腕")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := registry.Add(NewInfluence("センター")); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	root, err := registry.RootInfluence()
	if err != nil {
		t.Fatalf("root failed: %v", err)
	}
	if root.Name() != "左腕" {
		t.Fatalf("fallback root mismatch: %s", root.Name())
	}

	registry.SetRootName("センター")
	root, err = registry.RootInfluence()
	if err != nil {
		t.Fatalf("root failed: %v", err)
	}
	if root.Name() != "センター" {
		t.Fatalf("named root mismatch: %s", root.Name())
	}
}

func TestInfluencePreBindMatrixRoundTrip(t *testing.T) {
	registry := NewInfluenceRegistry()
	if _, err := registry.Add(NewInfluence("左腕")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	matrix := mgl64.Translate3D(1.0, 2.0, 3.0)
	if err := registry.SetPreBindMatrix(0, matrix); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := registry.PreBindMatrix(0)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != matrix {
		t.Fatalf("matrix mismatch: %v", got)
	}
	if _, err := registry.PreBindMatrix(9); !serrors.IsInfluenceNotFound(err) {
		t.Fatalf("unexpected error: %v", err)
	}
}
