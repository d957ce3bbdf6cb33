// 指示: miu200521358
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/miu200521358/mu_skin_weights/pkg/adapter/io_skin"
	"github.com/miu200521358/mu_skin_weights/pkg/adapter/naming"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/mmath"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/usecase/port/soutput"
	"github.com/miu200521358/mu_skin_weights/pkg/usecase/sinteractor"
)

const (
	batchOutputDirMode = 0o755
)

// batchConfig はシナリオ一括実行の設定を表す。
type batchConfig struct {
	OutputRoot string
	DryRun     bool
	FailFast   bool
}

// scenarioEntry は1シナリオ分の実行情報を表す。
type scenarioEntry struct {
	Index      int
	Name       string
	OutputPath string
	Run        func(usecase *sinteractor.SkinUsecase, reporter sinteractor.IApplyProgressReporter) error
}

// scenarioResult は1シナリオ分の実行結果を表す。
type scenarioResult struct {
	Entry          scenarioEntry
	Status         string
	Duration       time.Duration
	Err            error
	ApplyStageInfo string
}

// applyProgressCollector は Apply の進捗イベントを収集する。
type applyProgressCollector struct {
	eventCounts map[sinteractor.ApplyProgressEventType]int
	vertexDone  int
	vertexTotal int
}

// main はスキンウェイト編集シナリオの一括検証を実行する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決してシナリオを実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	entries := buildScenarioEntries(config.OutputRoot)
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "実行対象シナリオがありません")
		return 2
	}

	results := executeBatchScenarios(config, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	defaultOutputRoot, err := resolveDefaultOutputRoot()
	if err != nil {
		return batchConfig{}, err
	}
	outputRoot := flag.String("output-root", defaultOutputRoot, "シナリオ結果の出力ルートディレクトリ")
	dryRun := flag.Bool("dry-run", false, "実編集せず、シナリオ一覧と出力先計画のみ表示する")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()

	trimmedOutputRoot := strings.TrimSpace(*outputRoot)
	if trimmedOutputRoot == "" {
		return batchConfig{}, errors.New("output-root が空です")
	}
	return batchConfig{
		OutputRoot: filepath.Clean(trimmedOutputRoot),
		DryRun:     *dryRun,
		FailFast:   *failFast,
	}, nil
}

// resolveDefaultOutputRoot はスクリプト配置ディレクトリ基準の既定出力先を返す。
func resolveDefaultOutputRoot() (string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("実行ファイル位置を取得できません")
	}
	currentDir := filepath.Dir(currentFilePath)
	return filepath.Join(currentDir, "output"), nil
}

// buildScenarioEntries はシナリオ一覧を生成する。
func buildScenarioEntries(outputRoot string) []scenarioEntry {
	scenarios := []struct {
		Name string
		Run  func(usecase *sinteractor.SkinUsecase, reporter sinteractor.IApplyProgressReporter) error
	}{
		{Name: "set_redistribute", Run: runSetScenario},
		{Name: "scale_redistribute", Run: runScaleScenario},
		{Name: "increment_over_capacity", Run: runIncrementScenario},
		{Name: "mirror_push", Run: runMirrorScenario},
		{Name: "copy_paste_broadcast", Run: runClipboardScenario},
		{Name: "normalize_all", Run: runNormalizeScenario},
	}

	entries := make([]scenarioEntry, 0, len(scenarios))
	for i, scenario := range scenarios {
		caseDirName := fmt.Sprintf("%03d_%s", i+1, scenario.Name)
		entries = append(entries, scenarioEntry{
			Index:      i + 1,
			Name:       scenario.Name,
			OutputPath: filepath.Join(outputRoot, caseDirName, scenario.Name+".json"),
			Run:        scenario.Run,
		})
	}
	return entries
}

// executeBatchScenarios は全シナリオを順次実行する。
func executeBatchScenarios(config batchConfig, entries []scenarioEntry) []scenarioResult {
	results := make([]scenarioResult, 0, len(entries))
	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] シナリオ開始: name=%s\n", entry.Index, total, entry.Name)
		result := runScenarioEntry(config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] シナリオ成功: name=%s output=%s elapsed=%s\n",
				entry.Index, total, entry.Name, entry.OutputPath, result.Duration.Round(time.Millisecond))
			if strings.TrimSpace(result.ApplyStageInfo) != "" {
				fmt.Printf("[%d/%d] Apply進捗: %s\n", entry.Index, total, result.ApplyStageInfo)
			}
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: name=%s output=%s\n", entry.Index, total, entry.Name, entry.OutputPath)
		default:
			fmt.Printf("[%d/%d] シナリオ失敗: name=%s reason=%v\n", entry.Index, total, entry.Name, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// runScenarioEntry は1シナリオ分を実行して結果を返す。
func runScenarioEntry(config batchConfig, entry scenarioEntry) scenarioResult {
	result := scenarioResult{
		Entry:  entry,
		Status: "failed",
	}
	if config.DryRun {
		result.Status = "dry_run"
		return result
	}
	if err := os.MkdirAll(filepath.Dir(entry.OutputPath), batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力ディレクトリ作成に失敗しました: %w", err)
		return result
	}

	startedAt := time.Now()
	usecase := buildScenarioUsecase()
	collector := newApplyProgressCollector()
	if err := entry.Run(usecase, collector); err != nil {
		result.Err = err
		return result
	}
	if err := verifyNormalized(usecase.Cluster()); err != nil {
		result.Err = err
		return result
	}
	repository := io_skin.NewSkinRepository()
	if err := usecase.SaveSkin(repository, entry.OutputPath, soutput.SaveOptions{Indent: true}); err != nil {
		result.Err = fmt.Errorf("シナリオ結果の保存に失敗しました: %w", err)
		return result
	}

	result.Status = "succeeded"
	result.Duration = time.Since(startedAt)
	result.ApplyStageInfo = collector.Summary()
	return result
}

// buildScenarioUsecase は検証用スキンクラスタとユースケースを構築する。
// 腕系4本の左右対称クラスタに3頂点分のウェイトを持たせる。
func buildScenarioUsecase() *sinteractor.SkinUsecase {
	cluster := model.NewSkinCluster("scenario")
	for _, name := range []string{"左腕", "左ひじ", "右腕", "右ひじ"} {
		if _, err := cluster.AddInfluence(name); err != nil {
			panic(err)
		}
	}
	restore := cluster.Weights.SuspendNormalizeOnWrite()
	defer restore()
	seeds := map[int]model.WeightMap{
		0: {0: 0.4, 1: 0.6},
		1: {0: 0.25, 1: 0.25, 2: 0.25, 3: 0.25},
		2: {2: 0.7, 3: 0.3},
	}
	for vertexIndex, weights := range seeds {
		if err := cluster.Weights.SetWeights(vertexIndex, weights); err != nil {
			panic(err)
		}
	}
	return sinteractor.NewSkinUsecase(cluster, sinteractor.SkinUsecaseDeps{
		Naming:   naming.NewConventionResolver(nil),
		Topology: mirrorPairTopology{},
	})
}

// mirrorPairTopology は頂点0と頂点2を対称ペア、頂点1を対称面上とみなす固定トポロジーを表す。
type mirrorPairTopology struct{}

func (mirrorPairTopology) ConnectedVertices(vertexIndex int) ([]int, error) {
	return nil, errors.New("隣接情報は未定義です")
}

func (mirrorPairTopology) ConnectedEdges(vertexIndex int) ([][2]int, error) {
	return nil, errors.New("接続エッジ情報は未定義です")
}

func (mirrorPairTopology) ConnectedFaces(vertexIndex int) ([]int, error) {
	return nil, errors.New("接続面情報は未定義です")
}

func (mirrorPairTopology) MirrorVertexIndex(vertexIndex int, tolerance float64) (int, error) {
	switch vertexIndex {
	case 0:
		return 2, nil
	case 2:
		return 0, nil
	case 1:
		return 1, nil
	}
	return -1, fmt.Errorf("ミラー頂点が未定義です: %d", vertexIndex)
}

func (mirrorPairTopology) ShortestEdgePath(startVertexIndex int, endVertexIndex int) ([]int, error) {
	return nil, errors.New("経路情報は未定義です")
}

func (mirrorPairTopology) VertexPosition(vertexIndex int) (mmath.Vec3, error) {
	return mmath.Vec3{}, errors.New("頂点位置は未定義です")
}

func (mirrorPairTopology) FaceVertexIndexes(faceIndex int) ([]int, error) {
	return nil, errors.New("面情報は未定義です")
}

func (mirrorPairTopology) FaceNormal(faceIndex int) (mmath.Vec3, error) {
	return mmath.Vec3{}, errors.New("面法線は未定義です")
}

// runSetScenario は設定と比例再配分のシナリオを実行する。
func runSetScenario(usecase *sinteractor.SkinUsecase, reporter sinteractor.IApplyProgressReporter) error {
	edit, err := usecase.SetVertexWeights([]int{0}, 0, []int{1}, 0.7, nil)
	if err != nil {
		return err
	}
	return commitScenarioEdit(usecase, edit, reporter)
}

// runScaleScenario は百分率拡縮のシナリオを実行する。
func runScaleScenario(usecase *sinteractor.SkinUsecase, reporter sinteractor.IApplyProgressReporter) error {
	edit, err := usecase.ScaleVertexWeights([]int{0, 1}, 0, []int{1}, 0.5, nil)
	if err != nil {
		return err
	}
	return commitScenarioEdit(usecase, edit, reporter)
}

// runIncrementScenario は上限到達頂点を含む増分シナリオを実行する。
func runIncrementScenario(usecase *sinteractor.SkinUsecase, reporter sinteractor.IApplyProgressReporter) error {
	edit, err := usecase.IncrementVertexWeights([]int{0, 1, 2}, 0, []int{1}, 0.1, nil)
	if err != nil {
		return err
	}
	applied, err := usecase.ApplyEditResult(edit, reporter)
	if err != nil {
		return err
	}
	// 頂点2は対象を保持しないが再配分元からの移し替えで成立し得るため、成功数のみ検証する。
	if len(applied.Committed) == 0 {
		return errors.New("コミット済み頂点がありません")
	}
	return nil
}

// runMirrorScenario はミラー押し出しのシナリオを実行する。
func runMirrorScenario(usecase *sinteractor.SkinUsecase, reporter sinteractor.IApplyProgressReporter) error {
	edit, err := usecase.MirrorVertices([]int{0, 1}, false, 1e-4, false)
	if err != nil {
		return err
	}
	return commitScenarioEdit(usecase, edit, reporter)
}

// runClipboardScenario はコピーとブロードキャスト貼り付けのシナリオを実行する。
func runClipboardScenario(usecase *sinteractor.SkinUsecase, reporter sinteractor.IApplyProgressReporter) error {
	if err := usecase.CopyWeights([]int{0}); err != nil {
		return err
	}
	edit, err := usecase.PasteWeights([]int{1, 2})
	if err != nil {
		return err
	}
	return commitScenarioEdit(usecase, edit, reporter)
}

// runNormalizeScenario は全頂点正規化のシナリオを実行する。
func runNormalizeScenario(usecase *sinteractor.SkinUsecase, reporter sinteractor.IApplyProgressReporter) error {
	edit, err := usecase.NormalizeVertexWeights(usecase.Cluster().Weights.VertexIndexes())
	if err != nil {
		return err
	}
	return commitScenarioEdit(usecase, edit, reporter)
}

// commitScenarioEdit は編集結果をコミットして頂点単位失敗をエラー化する。
func commitScenarioEdit(usecase *sinteractor.SkinUsecase, edit *sinteractor.EditResult, reporter sinteractor.IApplyProgressReporter) error {
	applied, err := usecase.ApplyEditResult(edit, reporter)
	if err != nil {
		return err
	}
	if len(applied.Failed) > 0 {
		return fmt.Errorf("頂点単位の失敗があります: %d件 (先頭: %v)", len(applied.Failed), applied.Failed[0].Err)
	}
	return nil
}

// verifyNormalized は全頂点のウェイト合計が1であることを検証する。
func verifyNormalized(cluster *model.SkinCluster) error {
	for _, vertexIndex := range cluster.Weights.VertexIndexes() {
		weights, _ := cluster.Weights.Weights(vertexIndex)
		sum := weights.Sum()
		if math.Abs(sum-1.0) > model.NormalizeTolerance {
			return fmt.Errorf("頂点%dのウェイト合計が1ではありません: %f", vertexIndex, sum)
		}
	}
	return nil
}

// printBatchSummary はシナリオ結果の集計を標準出力へ表示する。
func printBatchSummary(results []scenarioResult) {
	succeeded := 0
	failed := 0
	dryRun := 0
	for _, result := range results {
		switch result.Status {
		case "succeeded":
			succeeded++
		case "dry_run":
			dryRun++
		default:
			failed++
		}
	}
	fmt.Printf(
		"シナリオ実行サマリ: total=%d succeeded=%d failed=%d dry_run=%d\n",
		len(results),
		succeeded,
		failed,
		dryRun,
	)
}

// newApplyProgressCollector は Apply 進捗収集器を生成する。
func newApplyProgressCollector() *applyProgressCollector {
	return &applyProgressCollector{
		eventCounts: map[sinteractor.ApplyProgressEventType]int{},
	}
}

// ReportApplyProgress は Apply の進捗イベントを収集する。
func (collector *applyProgressCollector) ReportApplyProgress(event sinteractor.ApplyProgressEvent) {
	if collector == nil {
		return
	}
	if collector.eventCounts == nil {
		collector.eventCounts = map[sinteractor.ApplyProgressEventType]int{}
	}
	collector.eventCounts[event.Type]++
	if event.DoneCount > collector.vertexDone {
		collector.vertexDone = event.DoneCount
	}
	if event.TotalCount > collector.vertexTotal {
		collector.vertexTotal = event.TotalCount
	}
}

// Summary は収集した Apply 進捗の要約文字列を返す。
func (collector *applyProgressCollector) Summary() string {
	if collector == nil || len(collector.eventCounts) == 0 {
		return ""
	}
	types := make([]string, 0, len(collector.eventCounts))
	for stageType := range collector.eventCounts {
		types = append(types, string(stageType))
	}
	sort.Strings(types)
	return fmt.Sprintf(
		"events=%d vertexDone=%d vertexTotal=%d stages=%s",
		len(collector.eventCounts),
		collector.vertexDone,
		collector.vertexTotal,
		strings.Join(types, ","),
	)
}
