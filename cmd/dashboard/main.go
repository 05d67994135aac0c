// dashboard serves the upload and run web UI for the cricket motion
// analysis pipeline.
package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/cricketlab/crickmotion/config"
	"github.com/cricketlab/crickmotion/logging"
	"github.com/cricketlab/crickmotion/pipeline"
	"github.com/cricketlab/crickmotion/pose"
	"github.com/cricketlab/crickmotion/web"
)

func main() {

	configFile := flag.String("config", "", "Path to YAML config file")
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

	log := logging.New(logLevel(cfg.Log.Level), cfg.Log.File)
	defer log.Close()

	params := pose.DefaultParams()
	params.InputSize = cfg.Pose.InputSize
	params.ScoreThreshold = cfg.Pose.ScoreThreshold

	est, err := pose.NewEstimator(cfg.Pose.ModelPath, params)

	if err != nil {
		log.Error("loading pose model: %v", err)
		os.Exit(1)
	}

	defer est.Close()

	storage, err := web.NewLocalStorage(cfg.Server.UploadDir)

	if err != nil {
		log.Error("creating upload storage: %v", err)
		os.Exit(1)
	}

	store, err := web.OpenSessionStore(cfg.Server.DBPath)

	if err != nil {
		log.Error("opening session store: %v", err)
		os.Exit(1)
	}

	defer store.Close()

	ws := pipeline.Workspace{DataDir: cfg.Pipeline.DataDir}

	app := &web.App{
		Storage:       storage,
		Store:         store,
		Runner:        pipeline.New(ws, est, log),
		Workspace:     ws,
		MaxUploadSize: cfg.Server.MaxUploadMB << 20,
		MinFPS:        cfg.Server.MinFPS,
		MaxFPS:        cfg.Server.MaxFPS,
		DefaultFPS:    cfg.Pipeline.DefaultFPS,
		Log:           log,
	}

	log.Info("dashboard listening on %s", cfg.Server.Addr)

	if err := http.ListenAndServe(cfg.Server.Addr, web.NewRouter(app)); err != nil {
		log.Error("server: %v", err)
		os.Exit(1)
	}
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
