// 指示: miu200521358
// Package serrors はスキンウェイト処理のエラー種別を提供する。
package serrors

import (
	"errors"
	"fmt"
)

// Kind はエラー種別を表す。
type Kind string

const (
	// KindInvalidArgument は引数不正を表す。
	KindInvalidArgument Kind = "InvalidArgument"
	// KindInfluenceNotFound はインフルエンス未登録を表す。
	KindInfluenceNotFound Kind = "InfluenceNotFound"
	// KindMaxInfluencesExceeded はインフルエンス数上限超過を表す。
	KindMaxInfluencesExceeded Kind = "MaxInfluencesExceeded"
	// KindEmptyWeightSet は総和0ウェイトの正規化不能を表す。
	KindEmptyWeightSet Kind = "EmptyWeightSet"
	// KindInfluenceInUse は参照中インフルエンスの削除拒否を表す。
	KindInfluenceInUse Kind = "InfluenceInUse"
	// KindIoExtInvalid は入出力拡張子不正を表す。
	KindIoExtInvalid Kind = "IoExtInvalid"
	// KindIoFileNotFound は入出力ファイル不存在を表す。
	KindIoFileNotFound Kind = "IoFileNotFound"
	// KindIoParseFailed は入出力解析失敗を表す。
	KindIoParseFailed Kind = "IoParseFailed"
)

// SkinError は種別付きエラーを表す。
type SkinError struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error はエラーメッセージを返す。
func (e *SkinError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap は原因エラーを返す。
func (e *SkinError) Unwrap() error {
	return e.Cause
}

// newSkinError は種別付きエラーを生成する。
func newSkinError(kind Kind, cause error, format string, args ...any) *SkinError {
	return &SkinError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// NewInvalidArgument は引数不正エラーを生成する。
func NewInvalidArgument(format string, args ...any) *SkinError {
	return newSkinError(KindInvalidArgument, nil, format, args...)
}

// NewInfluenceNotFound はインフルエンス未登録エラーを生成する。
func NewInfluenceNotFound(format string, args ...any) *SkinError {
	return newSkinError(KindInfluenceNotFound, nil, format, args...)
}

// NewMaxInfluencesExceeded はインフルエンス数上限超過エラーを生成する。
func NewMaxInfluencesExceeded(format string, args ...any) *SkinError {
	return newSkinError(KindMaxInfluencesExceeded, nil, format, args...)
}

// NewEmptyWeightSet は総和0ウェイトエラーを生成する。
func NewEmptyWeightSet(format string, args ...any) *SkinError {
	return newSkinError(KindEmptyWeightSet, nil, format, args...)
}

// NewInfluenceInUse は参照中インフルエンス削除拒否エラーを生成する。
func NewInfluenceInUse(format string, args ...any) *SkinError {
	return newSkinError(KindInfluenceInUse, nil, format, args...)
}

// NewIoExtInvalid は入出力拡張子不正エラーを生成する。
func NewIoExtInvalid(path string, cause error) *SkinError {
	return newSkinError(KindIoExtInvalid, cause, "対応していない拡張子です: %s", path)
}

// NewIoFileNotFound は入出力ファイル不存在エラーを生成する。
func NewIoFileNotFound(path string, cause error) *SkinError {
	return newSkinError(KindIoFileNotFound, cause, "ファイルが見つかりません: %s", path)
}

// NewIoParseFailed は入出力解析失敗エラーを生成する。
func NewIoParseFailed(message string, cause error) *SkinError {
	return newSkinError(KindIoParseFailed, cause, "%s", message)
}

// IsKind は指定種別のエラーか判定する。
func IsKind(err error, kind Kind) bool {
	var skinErr *SkinError
	if !errors.As(err, &skinErr) {
		return false
	}
	return skinErr.Kind == kind
}

// IsInvalidArgument は引数不正エラーか判定する。
func IsInvalidArgument(err error) bool {
	return IsKind(err, KindInvalidArgument)
}

// IsInfluenceNotFound はインフルエンス未登録エラーか判定する。
func IsInfluenceNotFound(err error) bool {
	return IsKind(err, KindInfluenceNotFound)
}

// IsMaxInfluencesExceeded はインフルエンス数上限超過エラーか判定する。
func IsMaxInfluencesExceeded(err error) bool {
	return IsKind(err, KindMaxInfluencesExceeded)
}

// IsEmptyWeightSet は総和0ウェイトエラーか判定する。
func IsEmptyWeightSet(err error) bool {
	return IsKind(err, KindEmptyWeightSet)
}

// IsInfluenceInUse は参照中インフルエンス削除拒否エラーか判定する。
func IsInfluenceInUse(err error) bool {
	return IsKind(err, KindInfluenceInUse)
}
