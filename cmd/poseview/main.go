// poseview renders a landmark record as an interactive 3D figure, or
// overlays an actual record against an ideal reference pose.
//
// Usage:
//
//	poseview -record frame_00000.json -out pose.html
//	poseview -record actual.json -ideal ideal.json -out compare.html
package main

import (
	"flag"
	"os"

	"github.com/cricketlab/crickmotion/logging"
	"github.com/cricketlab/crickmotion/pose"
	"github.com/cricketlab/crickmotion/viewer"
)

func main() {

	recordFile := flag.String("record", "", "Path to landmark record JSON file")
	idealFile := flag.String("ideal", "", "Optional ideal reference record to overlay")
	outFile := flag.String("out", "pose.html", "Output HTML file")
	title := flag.String("title", "", "Figure title")
	flag.Parse()

	log := logging.Default()

	if *recordFile == "" {
		log.Error("no record file given, use -record")
		flag.Usage()
		os.Exit(1)
	}

	rec, err := pose.LoadRecord(*recordFile)

	if err != nil {
		log.Error("loading record: %v", err)
		os.Exit(1)
	}

	var fig viewer.Figure

	if *idealFile != "" {
		ideal, err := pose.LoadRecord(*idealFile)

		if err != nil {
			log.Error("loading ideal record: %v", err)
			os.Exit(1)
		}

		fig = viewer.ComparePoses(rec, ideal)
	} else {
		if *title == "" {
			*title = pose.Stem(*recordFile)
		}

		fig = viewer.PlotPose(rec, *title)
	}

	if err := viewer.WriteHTML(fig, *outFile); err != nil {
		log.Error("writing figure: %v", err)
		os.Exit(1)
	}

	log.Info("figure saved to %s", *outFile)
}
