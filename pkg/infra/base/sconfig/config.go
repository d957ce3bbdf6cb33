// 指示: miu200521358
// Package sconfig はスキンウェイト編集ツールの設定管理を提供する。
package sconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

// Config はツール全体の設定を表す。
type Config struct {
	Skin    SkinConfig    `yaml:"skin"`
	Mirror  MirrorConfig  `yaml:"mirror"`
	Falloff FalloffConfig `yaml:"falloff"`
	Logging LoggingConfig `yaml:"logging"`
}

// SkinConfig はウェイト編集の基本設定を表す。
type SkinConfig struct {
	MaxInfluences  int     `yaml:"max_influences"`
	PruneTolerance float64 `yaml:"prune_tolerance"`
}

// MirrorConfig はミラー編集の設定を表す。
type MirrorConfig struct {
	Tolerance  float64           `yaml:"tolerance"`
	ExtraPairs map[string]string `yaml:"extra_pairs"`
}

// FalloffConfig はソフト選択減衰の設定を表す。
type FalloffConfig struct {
	Expression string  `yaml:"expression"`
	Radius     float64 `yaml:"radius"`
}

// LoggingConfig はログ出力の設定を表す。
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default は既定値の設定を返す。
func Default() *Config {
	return &Config{
		Skin: SkinConfig{
			MaxInfluences:  model.DefaultMaxInfluences,
			PruneTolerance: model.DefaultPruneTolerance,
		},
		Mirror: MirrorConfig{
			Tolerance: 1e-4,
		},
		Falloff: FalloffConfig{
			Expression: "1.0 - distance / radius",
			Radius:     1.0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load はYAMLファイルを既定値へ重ねて読み込む。
// path が空の場合は既定値をそのまま返す。
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルを読み込めません: %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("設定ファイルを解析できません: %s: %w", path, err)
	}
	return cfg, nil
}

// SaveTo は設定をYAMLファイルへ保存する。親ディレクトリが無ければ作成する。
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("設定ディレクトリを作成できません: %s: %w", dir, err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("設定のYAML生成に失敗しました: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("設定ファイルを書き込めません: %s: %w", path, err)
	}
	return nil
}
