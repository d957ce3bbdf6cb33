// 指示: miu200521358
// Package io_skin はスキンウェイトファイルの入出力アダプタを提供する。
package io_skin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_skin_weights/pkg/adapter/topology"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/mmath"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model/serrors"
	"github.com/miu200521358/mu_skin_weights/pkg/infra/base/slogging"
	"github.com/miu200521358/mu_skin_weights/pkg/usecase/port/soutput"
)

// LoadProgressEventType はスキン読込進捗イベント種別を表す。
type LoadProgressEventType string

const (
	// LoadProgressEventTypeFileReadComplete はファイル読込完了イベントを表す。
	LoadProgressEventTypeFileReadComplete LoadProgressEventType = "file_read_complete"
	// LoadProgressEventTypeJsonParsed はJSON解析完了イベントを表す。
	LoadProgressEventTypeJsonParsed LoadProgressEventType = "json_parsed"
	// LoadProgressEventTypeInfluencesRestored はインフルエンス復元完了イベントを表す。
	LoadProgressEventTypeInfluencesRestored LoadProgressEventType = "influences_restored"
	// LoadProgressEventTypeWeightsRestored はウェイト復元完了イベントを表す。
	LoadProgressEventTypeWeightsRestored LoadProgressEventType = "weights_restored"
	// LoadProgressEventTypeCompleted はスキン読込完了イベントを表す。
	LoadProgressEventTypeCompleted LoadProgressEventType = "completed"
)

// LoadProgressEvent はスキン読込進捗イベントを表す。
type LoadProgressEvent struct {
	Type           LoadProgressEventType
	FileSizeBytes  int
	InfluenceCount int
	VertexTotal    int
	VertexDone     int
}

// SkinRepository はスキンウェイトファイルの読み書き契約を表す。
type SkinRepository struct {
	loadProgressReporter func(LoadProgressEvent)
}

// NewSkinRepository はSkinRepositoryを生成する。
func NewSkinRepository() *SkinRepository {
	return &SkinRepository{}
}

// SetLoadProgressReporter はスキン読込進捗受信コールバックを設定する。
func (r *SkinRepository) SetLoadProgressReporter(reporter func(LoadProgressEvent)) {
	if r == nil {
		return
	}
	r.loadProgressReporter = reporter
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *SkinRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// InferName はパスから表示名を推定する。
func (r *SkinRepository) InferName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// Load はスキンクラスタを読み込む。
// 保存済みウェイトを編集時の再正規化で崩さないよう、復元中は書込時正規化を止める。
func (r *SkinRepository) Load(path string) (*model.SkinCluster, error) {
	doc, fileSize, err := r.readDocument(path)
	if err != nil {
		return nil, err
	}

	name := doc.Name
	if strings.TrimSpace(name) == "" {
		name = r.InferName(path)
	}
	cluster := model.NewSkinCluster(name)
	if doc.MaxInfluences != 0 {
		cluster.Weights.SetMaxInfluences(doc.MaxInfluences)
	}
	if doc.PruneTolerance > 0 {
		cluster.Weights.SetPruneTolerance(doc.PruneTolerance)
	}
	if strings.TrimSpace(doc.RootInfluence) != "" {
		cluster.Influences.SetRootName(doc.RootInfluence)
	}

	if err := restoreInfluences(cluster, doc.Influences); err != nil {
		return nil, err
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:           LoadProgressEventTypeInfluencesRestored,
		FileSizeBytes:  fileSize,
		InfluenceCount: len(doc.Influences),
		VertexTotal:    len(doc.Weights),
	})
	logSkinInfo("スキン読込ステップ: インフルエンス復元完了 influences=%d", len(doc.Influences))

	restored, err := restoreWeights(cluster, doc.Weights)
	if err != nil {
		return nil, err
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:           LoadProgressEventTypeWeightsRestored,
		FileSizeBytes:  fileSize,
		InfluenceCount: len(doc.Influences),
		VertexTotal:    len(doc.Weights),
		VertexDone:     restored,
	})
	logSkinInfo("スキン読込ステップ: ウェイト復元完了 vertices=%d", restored)

	r.reportLoadProgress(LoadProgressEvent{
		Type:           LoadProgressEventTypeCompleted,
		FileSizeBytes:  fileSize,
		InfluenceCount: len(doc.Influences),
		VertexTotal:    len(doc.Weights),
		VertexDone:     restored,
	})
	logSkinInfo("スキン読込完了: file=%s influences=%d vertices=%d", filepath.Base(path), len(doc.Influences), restored)
	return cluster, nil
}

// LoadTopologyTables はスキンファイル内のトポロジー節を参照テーブルへ変換する。
func (r *SkinRepository) LoadTopologyTables(path string) (topology.Tables, error) {
	doc, _, err := r.readDocument(path)
	if err != nil {
		return topology.Tables{}, err
	}
	if doc.Topology == nil {
		return topology.Tables{}, serrors.NewIoParseFailed(
			fmt.Sprintf("トポロジー節が存在しません: %s", filepath.Base(path)), nil)
	}
	return buildTopologyTables(doc.Topology)
}

// Save はスキンクラスタを保存する。
func (r *SkinRepository) Save(path string, cluster *model.SkinCluster, options soutput.SaveOptions) error {
	if cluster == nil {
		return serrors.NewInvalidArgument("保存対象スキンクラスタが未設定です")
	}
	if !r.CanLoad(path) {
		return serrors.NewIoExtInvalid(path, nil)
	}

	doc := buildSkinDocument(cluster)
	var (
		b   []byte
		err error
	)
	if options.Indent {
		b, err = json.MarshalIndent(doc, "", "  ")
	} else {
		b, err = json.Marshal(doc)
	}
	if err != nil {
		return serrors.NewIoParseFailed("スキンJSONの生成に失敗しました", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return serrors.NewIoParseFailed("スキンファイルの書き込みに失敗しました", err)
	}
	logSkinInfo("スキン保存完了: file=%s influences=%d vertices=%d bytes=%d",
		filepath.Base(path), len(doc.Influences), len(doc.Weights), len(b))
	return nil
}

// readDocument はスキンファイルを読み込んでJSON解析する。
func (r *SkinRepository) readDocument(path string) (*skinDocument, int, error) {
	if !r.CanLoad(path) {
		return nil, 0, serrors.NewIoExtInvalid(path, nil)
	}
	logSkinInfo("スキン読込開始: file=%s", filepath.Base(path))

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, serrors.NewIoFileNotFound(path, err)
		}
		return nil, 0, serrors.NewIoParseFailed("スキンファイルの読み取りに失敗しました", err)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:          LoadProgressEventTypeFileReadComplete,
		FileSizeBytes: len(b),
	})
	logSkinInfo("スキン読込ステップ: ファイル読み取り完了 bytes=%d", len(b))

	doc := skinDocument{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, 0, serrors.NewIoParseFailed("スキンJSONの解析に失敗しました", err)
	}
	r.reportLoadProgress(LoadProgressEvent{
		Type:           LoadProgressEventTypeJsonParsed,
		FileSizeBytes:  len(b),
		InfluenceCount: len(doc.Influences),
		VertexTotal:    len(doc.Weights),
	})
	logSkinInfo("スキン読込ステップ: JSON解析完了 influences=%d vertices=%d", len(doc.Influences), len(doc.Weights))
	return &doc, len(b), nil
}

// reportLoadProgress は読込進捗イベントを通知する。
func (r *SkinRepository) reportLoadProgress(event LoadProgressEvent) {
	if r == nil || r.loadProgressReporter == nil {
		return
	}
	r.loadProgressReporter(event)
}

// restoreInfluences はインフルエンス文書を保存時indexのままレジストリへ復元する。
func restoreInfluences(cluster *model.SkinCluster, docs []influenceDocument) error {
	sorted := append([]influenceDocument(nil), docs...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})
	for _, doc := range sorted {
		influence := model.NewInfluence(doc.Name)
		if len(doc.BindInverseMatrix) == 16 {
			matrix := mgl64.Mat4{}
			copy(matrix[:], doc.BindInverseMatrix)
			influence.SetBindInverseMatrix(matrix)
		} else if len(doc.BindInverseMatrix) != 0 {
			return serrors.NewIoParseFailed(
				fmt.Sprintf("bindInverseMatrix の要素数が不正です: index=%d count=%d", doc.Index, len(doc.BindInverseMatrix)), nil)
		}
		if err := cluster.Influences.RestoreSlot(doc.Index, influence, doc.IsNull); err != nil {
			return serrors.NewIoParseFailed(fmt.Sprintf("インフルエンスの復元に失敗しました: index=%d", doc.Index), err)
		}
	}
	return nil
}

// restoreWeights はウェイト文書をストアへ復元して頂点数を返す。
func restoreWeights(cluster *model.SkinCluster, weightDocs map[string]map[string]float64) (int, error) {
	restore := cluster.Weights.SuspendNormalizeOnWrite()
	defer restore()

	restored := 0
	for vertexKey, entries := range weightDocs {
		vertexIndex, err := parseIndexKey(vertexKey, "頂点index")
		if err != nil {
			return restored, err
		}
		weights := model.WeightMap{}
		for influenceKey, weight := range entries {
			influenceIndex, err := parseIndexKey(influenceKey, "インフルエンスindex")
			if err != nil {
				return restored, err
			}
			weights[influenceIndex] = weight
		}
		if err := cluster.Weights.SetWeights(vertexIndex, weights); err != nil {
			return restored, serrors.NewIoParseFailed(fmt.Sprintf("ウェイトの復元に失敗しました: vertex=%d", vertexIndex), err)
		}
		restored++
	}
	return restored, nil
}

// parseIndexKey はJSONキー文字列を非負indexへ変換する。
func parseIndexKey(key string, label string) (int, error) {
	index, err := strconv.Atoi(key)
	if err != nil || index < 0 {
		return -1, serrors.NewIoParseFailed(fmt.Sprintf("%s が不正です: %s", label, key), err)
	}
	return index, nil
}

// buildSkinDocument はスキンクラスタを保存文書へ変換する。
func buildSkinDocument(cluster *model.SkinCluster) *skinDocument {
	doc := &skinDocument{
		Name:           cluster.Name,
		MaxInfluences:  cluster.Weights.MaxInfluences(),
		PruneTolerance: cluster.Weights.PruneTolerance(),
		RootInfluence:  cluster.Influences.RootName(),
		Influences:     make([]influenceDocument, 0, cluster.Influences.Len()),
		Weights:        map[string]map[string]float64{},
	}
	for _, slot := range cluster.Influences.Slots() {
		matrix := slot.BindInverseMatrix()
		doc.Influences = append(doc.Influences, influenceDocument{
			Index:             slot.Index(),
			Name:              slot.Name(),
			IsNull:            slot.IsNull(),
			BindInverseMatrix: matrix[:],
		})
	}
	for vertexIndex, weights := range cluster.Weights.WeightList() {
		entries := make(map[string]float64, len(weights))
		for influenceIndex, weight := range weights {
			entries[strconv.Itoa(influenceIndex)] = weight
		}
		doc.Weights[strconv.Itoa(vertexIndex)] = entries
	}
	return doc
}

// buildTopologyTables はトポロジー文書を参照テーブルへ変換する。
func buildTopologyTables(doc *topologyDocument) (topology.Tables, error) {
	tables := topology.Tables{
		Positions:   map[int]mmath.Vec3{},
		Adjacency:   map[int][]int{},
		Mirror:      map[int]int{},
		Faces:       append([][]int(nil), doc.Faces...),
		FaceNormals: map[int]mmath.Vec3{},
		Paths:       map[[2]int][]int{},
	}
	for key, values := range doc.Positions {
		vertexIndex, err := parseIndexKey(key, "頂点index")
		if err != nil {
			return topology.Tables{}, err
		}
		if len(values) != 3 {
			return topology.Tables{}, serrors.NewIoParseFailed(
				fmt.Sprintf("頂点位置の要素数が不正です: vertex=%d count=%d", vertexIndex, len(values)), nil)
		}
		tables.Positions[vertexIndex] = mmath.NewVec3(values[0], values[1], values[2])
	}
	for key, values := range doc.Adjacency {
		vertexIndex, err := parseIndexKey(key, "頂点index")
		if err != nil {
			return topology.Tables{}, err
		}
		tables.Adjacency[vertexIndex] = append([]int(nil), values...)
	}
	for key, mirrorIndex := range doc.Mirror {
		vertexIndex, err := parseIndexKey(key, "頂点index")
		if err != nil {
			return topology.Tables{}, err
		}
		tables.Mirror[vertexIndex] = mirrorIndex
	}
	for key, values := range doc.FaceNormals {
		faceIndex, err := parseIndexKey(key, "面index")
		if err != nil {
			return topology.Tables{}, err
		}
		if len(values) != 3 {
			return topology.Tables{}, serrors.NewIoParseFailed(
				fmt.Sprintf("面法線の要素数が不正です: face=%d count=%d", faceIndex, len(values)), nil)
		}
		tables.FaceNormals[faceIndex] = mmath.NewVec3(values[0], values[1], values[2])
	}
	return tables, nil
}

// logSkinInfo はスキン入出力のINFOログを出力する。
func logSkinInfo(format string, params ...any) {
	logger := slogging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// skinDocument はスキンファイルのトップレベル要素を表す。
type skinDocument struct {
	Name           string                        `json:"name"`
	MaxInfluences  int                           `json:"maxInfluences"`
	PruneTolerance float64                       `json:"pruneTolerance"`
	RootInfluence  string                        `json:"rootInfluence,omitempty"`
	Influences     []influenceDocument           `json:"influences"`
	Weights        map[string]map[string]float64 `json:"weights"`
	Topology       *topologyDocument             `json:"topology,omitempty"`
}

// influenceDocument はインフルエンス要素を表す。
type influenceDocument struct {
	Index             int       `json:"index"`
	Name              string    `json:"name"`
	IsNull            bool      `json:"isNull,omitempty"`
	BindInverseMatrix []float64 `json:"bindInverseMatrix,omitempty"`
}

// topologyDocument はトポロジー要素を表す。
type topologyDocument struct {
	Positions   map[string][]float64 `json:"positions"`
	Adjacency   map[string][]int     `json:"adjacency,omitempty"`
	Mirror      map[string]int       `json:"mirror,omitempty"`
	Faces       [][]int              `json:"faces,omitempty"`
	FaceNormals map[string][]float64 `json:"faceNormals,omitempty"`
}
