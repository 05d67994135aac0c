/*
Package crickmotion is a video analysis pipeline for cricket technique
review.

It samples frames from an input video, runs an external pose estimation
model to obtain 33 body landmarks per frame, derives joint angles such as
the right elbow and knee, renders an annotated overlay video, and provides
an interactive 3D pose viewer plus a web dashboard.

The pipeline stages live in their own packages and run strictly in
sequence:

	extract  - samples frames from the source video at a target FPS
	pose     - runs the pose model and persists per frame landmark records
	feature  - computes joint angles and writes the feature table
	render   - draws the skeleton overlay video
	viewer   - builds interactive 3D pose figures

The pipeline package sequences the stages for a single video and the web
package exposes the same sequence behind an upload and run dashboard.
*/
package crickmotion
