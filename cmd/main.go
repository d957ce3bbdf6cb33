// 指示: miu200521358
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/miu200521358/mu_skin_weights/pkg/adapter/falloff"
	"github.com/miu200521358/mu_skin_weights/pkg/adapter/io_skin"
	"github.com/miu200521358/mu_skin_weights/pkg/adapter/naming"
	"github.com/miu200521358/mu_skin_weights/pkg/adapter/spresenter/messages"
	"github.com/miu200521358/mu_skin_weights/pkg/adapter/topology"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/mmath"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/infra/base/sconfig"
	"github.com/miu200521358/mu_skin_weights/pkg/infra/base/slogging"
	"github.com/miu200521358/mu_skin_weights/pkg/usecase/port/soutput"
	"github.com/miu200521358/mu_skin_weights/pkg/usecase/sinteractor"
)

// options はCLI引数を保持する。
type options struct {
	inputPath            string
	outputPath           string
	configPath           string
	operation            string
	targetName           string
	sourceNames          []string
	vertexIndexes        []int
	copyVertexIndexes    []int
	amount               float64
	percent              float64
	delta                float64
	pull                 bool
	tolerance            float64
	transferFrom         string
	falloffCenter        string
	falloffVertexIndexes []int
	indent               bool
}

// main はスキンウェイト編集を実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}

	cfg, err := sconfig.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger := slogging.NewLogger(slogging.Level(cfg.Logging.Level), fileConfigOf(cfg))
	slogging.SetDefaultLogger(logger)
	defer logger.Sync()

	repository := io_skin.NewSkinRepository()
	if !repository.CanLoad(opts.inputPath) {
		return fmt.Errorf(messages.InputUnsupported, opts.inputPath)
	}

	fmt.Fprintf(out, messages.StatusLoadStart, opts.inputPath)
	usecase := sinteractor.NewSkinUsecase(nil, sinteractor.SkinUsecaseDeps{
		Naming:     naming.NewConventionResolver(cfg.Mirror.ExtraPairs),
		SkinReader: repository,
		SkinWriter: repository,
		Topology:   loadTopology(repository, opts.inputPath),
	})
	cluster, err := usecase.LoadSkin(nil, opts.inputPath)
	if err != nil {
		return fmt.Errorf(messages.LoadFailed+": %w", err)
	}

	vertexIndexes := opts.vertexIndexes
	if len(vertexIndexes) == 0 {
		vertexIndexes = cluster.Weights.VertexIndexes()
	}
	falloffMap, err := buildFalloff(cfg, opts, vertexIndexes)
	if err != nil {
		return err
	}

	edit, err := runOperation(usecase, cluster, opts, vertexIndexes, falloffMap)
	if err != nil {
		return fmt.Errorf(messages.EditFailed+": %w", err)
	}
	applied, err := usecase.ApplyEditResult(edit, nil)
	if err != nil {
		return fmt.Errorf(messages.ApplyFailed+": %w", err)
	}
	for _, failed := range applied.Failed {
		fmt.Fprintf(errOut, messages.StatusVertexFailed, failed.VertexIndex, failed.Err)
	}
	fmt.Fprintf(out, messages.StatusEditDone,
		opts.operation, len(applied.Committed), len(applied.Failed))

	outputPath, err := resolveOutputPath(opts.inputPath, opts.outputPath)
	if err != nil {
		return err
	}
	if err := ensureOutputDir(outputPath); err != nil {
		return err
	}

	fmt.Fprintf(out, messages.StatusSaveStart, outputPath)
	if err := usecase.SaveSkin(nil, outputPath, soutput.SaveOptions{Indent: opts.indent}); err != nil {
		return fmt.Errorf(messages.SaveFailed+": %w", err)
	}
	fmt.Fprintf(out, messages.StatusSaveDone, outputPath)
	return nil
}

// fileConfigOf はログ設定からファイル出力設定を組み立てる。
func fileConfigOf(cfg *sconfig.Config) *slogging.FileConfig {
	if strings.TrimSpace(cfg.Logging.File) == "" {
		return nil
	}
	return slogging.DefaultFileConfig(cfg.Logging.File)
}

// runOperation は操作名に応じた編集を実行する。
func runOperation(
	usecase *sinteractor.SkinUsecase,
	cluster *model.SkinCluster,
	opts options,
	vertexIndexes []int,
	falloffMap model.FalloffMap,
) (*sinteractor.EditResult, error) {
	switch opts.operation {
	case "normalize":
		return usecase.NormalizeVertexWeights(vertexIndexes)
	case "prune":
		return usecase.PruneVertexWeights(vertexIndexes)
	case "set", "scale", "increment":
		targetIndex, sourceIndexes, err := resolveInfluences(cluster, opts.targetName, opts.sourceNames)
		if err != nil {
			return nil, err
		}
		switch opts.operation {
		case "set":
			return usecase.SetVertexWeights(vertexIndexes, targetIndex, sourceIndexes, opts.amount, falloffMap)
		case "scale":
			return usecase.ScaleVertexWeights(vertexIndexes, targetIndex, sourceIndexes, opts.percent, falloffMap)
		default:
			return usecase.IncrementVertexWeights(vertexIndexes, targetIndex, sourceIndexes, opts.delta, falloffMap)
		}
	case "mirror":
		return usecase.MirrorVertices(vertexIndexes, opts.pull, opts.tolerance, false)
	case "average":
		averaged, err := usecase.AverageVertexWeights(vertexIndexes)
		if err != nil {
			return nil, err
		}
		edit := &sinteractor.EditResult{Updates: map[int]model.WeightMap{}}
		for _, vertexIndex := range vertexIndexes {
			edit.Updates[vertexIndex] = averaged.Copy()
		}
		return edit, nil
	case "copy-paste":
		if err := usecase.CopyWeights(opts.copyVertexIndexes); err != nil {
			return nil, err
		}
		return usecase.PasteWeights(vertexIndexes)
	case "transfer":
		source, err := io_skin.NewSkinRepository().Load(opts.transferFrom)
		if err != nil {
			return nil, fmt.Errorf(messages.TransferLoadFailed+": %w", err)
		}
		return usecase.TransferWeightsFrom(source, vertexIndexes)
	default:
		return nil, fmt.Errorf(messages.OpUnknown, opts.operation)
	}
}

// resolveInfluences は名前指定のインフルエンスをindexへ解決する。
func resolveInfluences(cluster *model.SkinCluster, targetName string, sourceNames []string) (int, []int, error) {
	target, err := cluster.Influences.GetByName(targetName)
	if err != nil {
		return -1, nil, err
	}
	sourceIndexes := make([]int, 0, len(sourceNames))
	for _, sourceName := range sourceNames {
		source, err := cluster.Influences.GetByName(sourceName)
		if err != nil {
			return -1, nil, err
		}
		sourceIndexes = append(sourceIndexes, source.Index())
	}
	return target.Index(), sourceIndexes, nil
}

// loadTopology は入力ファイルのトポロジー節を読み込む。節が無い場合はnilを返す。
func loadTopology(repository *io_skin.SkinRepository, path string) soutput.IMeshTopology {
	tables, err := repository.LoadTopologyTables(path)
	if err != nil {
		return nil
	}
	return topology.NewTableTopology(tables)
}

// buildFalloff は減衰中心指定から頂点別の減衰マップを構築する。
// 中心は座標指定を優先し、無い場合は指定頂点の平均位置を使う。
func buildFalloff(cfg *sconfig.Config, opts options, vertexIndexes []int) (model.FalloffMap, error) {
	hasCenter := strings.TrimSpace(opts.falloffCenter) != ""
	if !hasCenter && len(opts.falloffVertexIndexes) == 0 {
		return nil, nil
	}
	tables, err := io_skin.NewSkinRepository().LoadTopologyTables(opts.inputPath)
	if err != nil {
		return nil, fmt.Errorf(messages.TopologyRequired+": %w", err)
	}
	meshTopology := topology.NewTableTopology(tables)
	center := mmath.Vec3{}
	if hasCenter {
		center, err = parseVec3Option(opts.falloffCenter)
	} else {
		center, err = falloff.CenterOfVertices(meshTopology, opts.falloffVertexIndexes)
	}
	if err != nil {
		return nil, err
	}
	expression, err := falloff.NewExpressionFalloff(cfg.Falloff.Expression, cfg.Falloff.Radius)
	if err != nil {
		return nil, err
	}
	return expression.BuildFalloffMap(meshTopology, center, vertexIndexes)
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("mu_skin_weights", flag.ContinueOnError)
	fs.SetOutput(errOut)

	in := fs.String("in", "", "入力スキンファイルパス")
	out := fs.String("out", "", "出力スキンファイルパス")
	configPath := fs.String("config", "", "設定ファイルパス")
	op := fs.String("op", "", "編集操作 (normalize/prune/set/scale/increment/mirror/average/copy-paste/transfer)")
	target := fs.String("target", "", "編集対象インフルエンス名")
	sources := fs.String("sources", "", "再配分元インフルエンス名 (カンマ区切り)")
	vertices := fs.String("vertices", "", "対象頂点index (カンマ区切り、省略時は全頂点)")
	copyVertices := fs.String("copy-vertices", "", "コピー元頂点index (カンマ区切り)")
	amount := fs.Float64("amount", 0, "設定ウェイト量 [0,1]")
	percent := fs.Float64("percent", 1, "拡縮率")
	delta := fs.Float64("delta", 0, "増分")
	pull := fs.Bool("pull", false, "ミラー頂点から取り込む")
	tolerance := fs.Float64("tolerance", 1e-4, "ミラー頂点の位置許容誤差")
	transferFrom := fs.String("transfer-from", "", "転送元スキンファイルパス")
	falloffCenter := fs.String("falloff-center", "", "減衰中心座標 (x,y,z)")
	falloffVertices := fs.String("falloff-vertices", "", "減衰中心とする頂点index (カンマ区切り、平均位置を中心にする)")
	indent := fs.Bool("indent", false, "保存JSONを整形する")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *in == "" {
		return options{}, fmt.Errorf(messages.InputRequired)
	}
	if !strings.EqualFold(filepath.Ext(*in), ".json") {
		return options{}, fmt.Errorf(messages.InputExtInvalid, *in)
	}
	if *op == "" {
		return options{}, fmt.Errorf(messages.OpRequired)
	}
	switch *op {
	case "set", "scale", "increment":
		if *target == "" {
			return options{}, fmt.Errorf(messages.TargetRequired)
		}
		if *sources == "" {
			return options{}, fmt.Errorf(messages.SourcesRequired)
		}
	case "copy-paste":
		if *copyVertices == "" {
			return options{}, fmt.Errorf(messages.CopyRequired)
		}
	case "transfer":
		if *transferFrom == "" {
			return options{}, fmt.Errorf(messages.TransferRequired)
		}
	}

	vertexIndexes, err := parseVertexIndexes(*vertices)
	if err != nil {
		return options{}, err
	}
	copyVertexIndexes, err := parseVertexIndexes(*copyVertices)
	if err != nil {
		return options{}, err
	}
	falloffVertexIndexes, err := parseVertexIndexes(*falloffVertices)
	if err != nil {
		return options{}, err
	}

	return options{
		inputPath:            *in,
		outputPath:           *out,
		configPath:           *configPath,
		operation:            *op,
		targetName:           *target,
		sourceNames:          splitNames(*sources),
		vertexIndexes:        vertexIndexes,
		copyVertexIndexes:    copyVertexIndexes,
		amount:               *amount,
		percent:              *percent,
		delta:                *delta,
		pull:                 *pull,
		tolerance:            *tolerance,
		transferFrom:         *transferFrom,
		falloffCenter:        *falloffCenter,
		falloffVertexIndexes: falloffVertexIndexes,
		indent:               *indent,
	}, nil
}

// splitNames はカンマ区切り文字列を名前一覧へ分解する。
func splitNames(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		names = append(names, trimmed)
	}
	return names
}

// parseVertexIndexes はカンマ区切り文字列を頂点index一覧へ変換する。
func parseVertexIndexes(value string) ([]int, error) {
	indexes := []int(nil)
	for _, part := range splitNames(value) {
		index, err := strconv.Atoi(part)
		if err != nil || index < 0 {
			return nil, fmt.Errorf(messages.VertexInvalid, part)
		}
		indexes = append(indexes, index)
	}
	return indexes, nil
}

// parseVec3Option はカンマ区切り座標をVec3へ変換する。
func parseVec3Option(value string) (mmath.Vec3, error) {
	parts := splitNames(value)
	if len(parts) != 3 {
		return mmath.Vec3{}, fmt.Errorf(messages.Vec3CountInvalid, value)
	}
	values := [3]float64{}
	for i, part := range parts {
		parsed, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return mmath.Vec3{}, fmt.Errorf(messages.Vec3ValueInvalid, part)
		}
		values[i] = parsed
	}
	return mmath.NewVec3(values[0], values[1], values[2]), nil
}

// resolveOutputPath は出力スキンパスを解決する。
func resolveOutputPath(inputPath string, outputPath string) (string, error) {
	if strings.TrimSpace(outputPath) == "" {
		dir := filepath.Dir(inputPath)
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		return filepath.Join(dir, base+"_edited.json"), nil
	}
	if !strings.EqualFold(filepath.Ext(outputPath), ".json") {
		return "", fmt.Errorf(messages.OutputExtInvalid, outputPath)
	}
	return outputPath, nil
}

// ensureOutputDir は出力先ディレクトリを作成する。
func ensureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.OutputDirFailed+": %w", err)
	}
	return nil
}
