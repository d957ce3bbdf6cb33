// 指示: miu200521358
// Package messages はCLI表示メッセージの定義を提供する。
package messages

// 入力検証メッセージ。
const (
	InputRequired    = "入力スキンファイルを指定してください (-in)"
	InputExtInvalid  = "入力拡張子が .json ではありません: %s"
	InputUnsupported = "入力形式が未対応です: %s"
	OutputExtInvalid = "出力拡張子が .json ではありません: %s"
	OpRequired       = "編集操作を指定してください (-op)"
	OpUnknown        = "未対応の編集操作です: %s"
	TargetRequired   = "編集対象インフルエンスを指定してください (-target)"
	SourcesRequired  = "再配分元インフルエンスを指定してください (-sources)"
	TransferRequired = "転送元スキンファイルを指定してください (-transfer-from)"
	CopyRequired     = "コピー元頂点を指定してください (-copy-vertices)"
	VertexInvalid    = "頂点indexが不正です: %s"
	Vec3CountInvalid = "座標の要素数が不正です: %s"
	Vec3ValueInvalid = "座標が不正です: %s"
)

// 処理失敗メッセージ。
const (
	LoadFailed         = "スキン読み込みに失敗しました"
	SaveFailed         = "スキン保存に失敗しました"
	EditFailed         = "編集に失敗しました"
	ApplyFailed        = "編集結果の反映に失敗しました"
	TransferLoadFailed = "転送元スキンの読み込みに失敗しました"
	TopologyRequired   = "減衰計算にはトポロジー節が必要です"
	OutputDirFailed    = "出力先ディレクトリの作成に失敗しました"
)

// 進行状況メッセージ。
const (
	StatusLoadStart    = "[mu_skin_weights] 読み込み開始: %s\n"
	StatusEditDone     = "[mu_skin_weights] 編集完了: op=%s committed=%d failed=%d\n"
	StatusVertexFailed = "[mu_skin_weights] 頂点%d: %v\n"
	StatusSaveStart    = "[mu_skin_weights] 保存開始: %s\n"
	StatusSaveDone     = "[mu_skin_weights] 保存完了: %s\n"
)
