// 指示: miu200521358
package model

const (
	// SkinWarningNullInfluenceDropped はnullインフルエンス参照の読み捨て警告。
	SkinWarningNullInfluenceDropped = "SkinWarningNullInfluenceDropped"
	// SkinWarningRedistributeNoSource は再配分先ウェイト不足による編集スキップ警告。
	SkinWarningRedistributeNoSource = "SkinWarningRedistributeNoSource"
	// SkinWarningMirrorInfluenceMissing はミラー先インフルエンス不在警告。
	SkinWarningMirrorInfluenceMissing = "SkinWarningMirrorInfluenceMissing"
	// SkinWarningMirrorVertexMissing はミラー先頂点不在警告。
	SkinWarningMirrorVertexMissing = "SkinWarningMirrorVertexMissing"
	// SkinWarningTransferInfluenceMissing は転送先インフルエンス不在警告。
	SkinWarningTransferInfluenceMissing = "SkinWarningTransferInfluenceMissing"
	// SkinWarningClipboardBroadcast はクリップボード件数不一致によるブロードキャスト警告。
	SkinWarningClipboardBroadcast = "SkinWarningClipboardBroadcast"
)
