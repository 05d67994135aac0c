// Package config loads the YAML configuration shared by the CLI and the
// dashboard server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PoseConfig configures the pose estimation model.
type PoseConfig struct {
	ModelPath      string  `yaml:"model_path"`
	InputSize      int     `yaml:"input_size"`
	ScoreThreshold float64 `yaml:"score_threshold"`
}

// PipelineConfig configures the analysis pipeline defaults.
type PipelineConfig struct {
	DataDir    string `yaml:"data_dir"`
	DefaultFPS int    `yaml:"default_fps"`
}

// ServerConfig configures the dashboard HTTP server.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	UploadDir   string `yaml:"upload_dir"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
	DBPath      string `yaml:"db_path"`
	MinFPS      int    `yaml:"min_fps"`
	MaxFPS      int    `yaml:"max_fps"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config is the top level configuration structure.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Pose     PoseConfig     `yaml:"pose"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			DataDir:    "data",
			DefaultFPS: 5,
		},
		Pose: PoseConfig{
			ModelPath:      "models/pose_landmark_full.onnx",
			InputSize:      256,
			ScoreThreshold: 0.5,
		},
		Server: ServerConfig{
			Addr:        ":8080",
			UploadDir:   "uploads",
			MaxUploadMB: 500,
			DBPath:      "crickmotion.db",
			MinFPS:      2,
			MaxFPS:      15,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads and parses the YAML config file, filling unset fields with
// defaults.
func Load(path string) (*Config, error) {

	cfg := Default()

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
