// crickmotion runs the full cricket motion analysis pipeline on a single
// video file.
//
// Usage:
//
//	crickmotion -video data/raw_videos/delivery.mp4 -fps 5
package main

import (
	"flag"
	"os"

	"github.com/cricketlab/crickmotion/config"
	"github.com/cricketlab/crickmotion/logging"
	"github.com/cricketlab/crickmotion/pipeline"
	"github.com/cricketlab/crickmotion/pose"
)

func main() {

	videoFile := flag.String("video", "", "Path to cricket video file (.mp4, .mov, .mkv)")
	fps := flag.Int("fps", 0, "Target frames per second for sampling")
	configFile := flag.String("config", "", "Path to YAML config file")
	modelFile := flag.String("model", "", "Path to pose landmark ONNX model")
	dataDir := flag.String("data", "", "Data directory for pipeline artifacts")
	flag.Parse()

	cfg := config.Default()

	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)

		if err != nil {
			logging.Default().Error("loading config: %v", err)
			os.Exit(1)
		}
	}

	// flags override config
	if *modelFile != "" {
		cfg.Pose.ModelPath = *modelFile
	}

	if *dataDir != "" {
		cfg.Pipeline.DataDir = *dataDir
	}

	if *fps <= 0 {
		*fps = cfg.Pipeline.DefaultFPS
	}

	log := logging.New(logLevel(cfg.Log.Level), cfg.Log.File)
	defer log.Close()

	if *videoFile == "" {
		log.Error("no video file given, use -video")
		flag.Usage()
		os.Exit(1)
	}

	params := pose.DefaultParams()
	params.InputSize = cfg.Pose.InputSize
	params.ScoreThreshold = cfg.Pose.ScoreThreshold

	est, err := pose.NewEstimator(cfg.Pose.ModelPath, params)

	if err != nil {
		log.Error("loading pose model: %v", err)
		os.Exit(1)
	}

	defer est.Close()

	ws := pipeline.Workspace{DataDir: cfg.Pipeline.DataDir}
	p := pipeline.New(ws, est, log)

	res, err := p.Run(*videoFile, *fps)

	if err != nil {
		log.Error("analysis failed: %v", err)
		os.Exit(1)
	}

	log.Info("feature table:  %s", res.FeaturesCSV)
	log.Info("overlay video:  %s", res.OverlayMP4)
	log.Info("3D pose figure: %s", res.PoseHTML)
	log.Info("elbow mean %.1f deg, knee mean %.1f deg, trunk mean %.1f deg",
		res.Summary.RightElbow.Mean, res.Summary.RightKnee.Mean,
		res.Summary.Trunk.Mean)
}

func logLevel(name string) logging.Level {
	switch name {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
