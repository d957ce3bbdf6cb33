// 指示: miu200521358
package model

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
	"golang.org/x/text/width"
)

// Influence はメッシュへバインドされたジョイント1件を表す。
type Influence struct {
	index             int
	name              string
	isNull            bool
	bindInverseMatrix mgl64.Mat4
}

// NewInfluence は単位バインド逆行列付きでインフルエンスを生成する。
func NewInfluence(name string) *Influence {
	return &Influence{
		index:             -1,
		name:              name,
		bindInverseMatrix: mgl64.Ident4(),
	}
}

// Index は登録indexを返す。未登録の場合は-1。
func (i *Influence) Index() int {
	return i.index
}

// Name はインフルエンス名を返す。
func (i *Influence) Name() string {
	return i.name
}

// IsNull は削除済みスロットか判定する。
func (i *Influence) IsNull() bool {
	return i == nil || i.isNull
}

// BindInverseMatrix はバインド逆行列を返す。
func (i *Influence) BindInverseMatrix() mgl64.Mat4 {
	return i.bindInverseMatrix
}

// SetBindInverseMatrix はバインド逆行列を設定する。
func (i *Influence) SetBindInverseMatrix(matrix mgl64.Mat4) {
	i.bindInverseMatrix = matrix
}

// foldInfluenceName は全角半角を畳み込んだ照合用の名前を返す。
func foldInfluenceName(name string) string {
	return width.Fold.String(strings.TrimSpace(name))
}

// InfluenceRegistry はindex安定なインフルエンス一覧を表す。
// 削除されたスロットはnullのまま残り、indexは再割当てされない。
type InfluenceRegistry struct {
	slots    []*Influence
	rootName string
}

// NewInfluenceRegistry はインフルエンス一覧を生成する。
func NewInfluenceRegistry() *InfluenceRegistry {
	return &InfluenceRegistry{}
}

// SetRootName はルートインフルエンス名を設定する。
func (r *InfluenceRegistry) SetRootName(name string) {
	r.rootName = name
}

// RootName は設定済みルートインフルエンス名を返す。
func (r *InfluenceRegistry) RootName() string {
	return r.rootName
}

// Len はnullスロットを含むスロット数を返す。
func (r *InfluenceRegistry) Len() int {
	return len(r.slots)
}

// Add はインフルエンスを最小の空きスロットへ登録してindexを返す。
// null化されたスロットを優先して再利用する。同名の登録済みインフルエンスがある場合は失敗する。
func (r *InfluenceRegistry) Add(influence *Influence) (int, error) {
	if influence == nil {
		return -1, serrors.NewInvalidArgument("登録対象インフルエンスが未設定です")
	}
	if strings.TrimSpace(influence.name) == "" {
		return -1, serrors.NewInvalidArgument("インフルエンス名が未指定です")
	}
	if existing, err := r.GetByName(influence.name); err == nil && existing != nil {
		return -1, serrors.NewInvalidArgument("インフルエンスは既にバインド済みです: %s", influence.name)
	}

	for index, slot := range r.slots {
		if slot.IsNull() {
			influence.index = index
			r.slots[index] = influence
			return index, nil
		}
	}
	influence.index = len(r.slots)
	r.slots = append(r.slots, influence)
	return influence.index, nil
}

// Get はindex指定でインフルエンスを取得する。nullスロットは取得失敗とする。
func (r *InfluenceRegistry) Get(index int) (*Influence, error) {
	if index < 0 || index >= len(r.slots) {
		return nil, serrors.NewInfluenceNotFound("インフルエンスindexが範囲外です: %d", index)
	}
	slot := r.slots[index]
	if slot.IsNull() {
		return nil, serrors.NewInfluenceNotFound("インフルエンスは削除済みです: %d", index)
	}
	return slot, nil
}

// GetByName は名前指定でインフルエンスを取得する。全角半角差は無視して照合する。
func (r *InfluenceRegistry) GetByName(name string) (*Influence, error) {
	folded := foldInfluenceName(name)
	if folded == "" {
		return nil, serrors.NewInvalidArgument("インフルエンス名が未指定です")
	}
	for _, slot := range r.slots {
		if slot.IsNull() {
			continue
		}
		if foldInfluenceName(slot.name) == folded {
			return slot, nil
		}
	}
	return nil, serrors.NewInfluenceNotFound("インフルエンスが見つかりません: %s", name)
}

// Contains はindexが有効なインフルエンスを指すか判定する。
func (r *InfluenceRegistry) Contains(index int) bool {
	_, err := r.Get(index)
	return err == nil
}

// IsNullSlot はindexがnullスロットか判定する。範囲外はnull扱いとする。
func (r *InfluenceRegistry) IsNullSlot(index int) bool {
	return !r.Contains(index)
}

// markNull はスロットをnull化する。indexは詰めない。
func (r *InfluenceRegistry) markNull(index int) error {
	if index < 0 || index >= len(r.slots) {
		return serrors.NewInfluenceNotFound("インフルエンスindexが範囲外です: %d", index)
	}
	slot := r.slots[index]
	if slot.IsNull() {
		return serrors.NewInfluenceNotFound("インフルエンスは削除済みです: %d", index)
	}
	slot.isNull = true
	return nil
}

// RestoreSlot はファイル読み込み用にindex位置へスロットを直接復元する。
// 既存スロットへの上書きは失敗する。
func (r *InfluenceRegistry) RestoreSlot(index int, influence *Influence, isNull bool) error {
	if influence == nil {
		return serrors.NewInvalidArgument("復元対象インフルエンスが未設定です")
	}
	if index < 0 {
		return serrors.NewInvalidArgument("復元先indexが不正です: %d", index)
	}
	for index >= len(r.slots) {
		placeholder := NewInfluence("")
		placeholder.index = len(r.slots)
		placeholder.isNull = true
		r.slots = append(r.slots, placeholder)
	}
	if existing := r.slots[index]; !existing.IsNull() {
		return serrors.NewInvalidArgument("復元先スロットは使用中です: %d", index)
	}
	influence.index = index
	influence.isNull = isNull
	r.slots[index] = influence
	return nil
}

// Slots はnullスロットを含む全スロットをindex順で返す。
func (r *InfluenceRegistry) Slots() []*Influence {
	return append([]*Influence(nil), r.slots...)
}

// Values は有効なインフルエンスをindex昇順で返す。
func (r *InfluenceRegistry) Values() []*Influence {
	out := make([]*Influence, 0, len(r.slots))
	for _, slot := range r.slots {
		if slot.IsNull() {
			continue
		}
		out = append(out, slot)
	}
	return out
}

// RootInfluence は設定済みルート名のインフルエンスを返す。
// 未設定または不在の場合は最小indexの有効インフルエンスを返す。
func (r *InfluenceRegistry) RootInfluence() (*Influence, error) {
	if strings.TrimSpace(r.rootName) != "" {
		if root, err := r.GetByName(r.rootName); err == nil {
			return root, nil
		}
	}
	for _, slot := range r.slots {
		if !slot.IsNull() {
			return slot, nil
		}
	}
	return nil, serrors.NewInfluenceNotFound("有効なインフルエンスが存在しません")
}

// PreBindMatrix はindex指定でバインド逆行列を返す。
func (r *InfluenceRegistry) PreBindMatrix(index int) (mgl64.Mat4, error) {
	influence, err := r.Get(index)
	if err != nil {
		return mgl64.Ident4(), err
	}
	return influence.BindInverseMatrix(), nil
}

// SetPreBindMatrix はindex指定でバインド逆行列を設定する。
func (r *InfluenceRegistry) SetPreBindMatrix(index int, matrix mgl64.Mat4) error {
	influence, err := r.Get(index)
	if err != nil {
		return err
	}
	influence.SetBindInverseMatrix(matrix)
	return nil
}
