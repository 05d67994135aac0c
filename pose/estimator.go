package pose

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// Params defines the model configuration parameters used for inference and
// post processing of the pose landmark model.
type Params struct {
	// InputSize is the square tensor input size the model was trained on
	InputSize int
	// ScoreThreshold is the minimum pose presence score required for a
	// frame to be considered to contain a detected pose
	ScoreThreshold float64
	// LandmarkOutput is the name of the model output holding the landmark
	// tensor of NumLandmarks x 5 values (x, y, z, visibility, presence)
	LandmarkOutput string
	// ScoreOutput is the name of the model output holding the pose
	// presence score
	ScoreOutput string
}

// DefaultParams returns an instance of Params configured with default
// values for a BlazePose full body landmark model featuring:
// - Input Size: 256x256
// - Score Threshold: 0.5
func DefaultParams() Params {
	return Params{
		InputSize:      256,
		ScoreThreshold: 0.5,
		LandmarkOutput: "Identity",
		ScoreOutput:    "Identity_1",
	}
}

// Estimator runs pose landmark inference using a single re-used DNN session.
// It is not safe for concurrent use, the pipeline calls it sequentially.
type Estimator struct {
	// Params are the model configuration parameters
	Params Params

	net gocv.Net
}

// NewEstimator loads the pose landmark model from the given ONNX file and
// returns an Estimator ready for inference.
func NewEstimator(modelFile string, p Params) (*Estimator, error) {

	net := gocv.ReadNetFromONNX(modelFile)

	if net.Empty() {
		return nil, fmt.Errorf("error loading pose model %s", modelFile)
	}

	return &Estimator{
		Params: p,
		net:    net,
	}, nil
}

// Close releases the DNN session resources.
func (e *Estimator) Close() error {
	return e.net.Close()
}

// Detect runs pose inference on the given image and returns the landmark
// record.  The second return value is false when no pose was detected.
func (e *Estimator) Detect(img gocv.Mat) (Record, bool, error) {

	size := e.Params.InputSize

	// scale pixel values to [0,1] and resize to the tensor input size
	blob := gocv.BlobFromImage(img, 1.0/255.0,
		image.Pt(size, size), gocv.NewScalar(0, 0, 0, 0),
		true, false)
	defer blob.Close()

	e.net.SetInput(blob, "")

	outputs := e.net.ForwardLayers([]string{
		e.Params.LandmarkOutput, e.Params.ScoreOutput,
	})

	if len(outputs) < 2 {
		return nil, false, fmt.Errorf("pose model returned %d outputs, expected 2",
			len(outputs))
	}

	defer func() {
		for _, out := range outputs {
			out.Close()
		}
	}()

	landmarks, err := outputs[0].DataPtrFloat32()

	if err != nil {
		return nil, false, fmt.Errorf("error reading landmark output: %w", err)
	}

	scores, err := outputs[1].DataPtrFloat32()

	if err != nil {
		return nil, false, fmt.Errorf("error reading score output: %w", err)
	}

	if len(scores) < 1 || float64(scores[0]) < e.Params.ScoreThreshold {
		// no pose detected
		return nil, false, nil
	}

	rec := decodeLandmarks(landmarks, size)

	if rec == nil {
		return nil, false, nil
	}

	return rec, true, nil
}

// decodeLandmarks converts the raw landmark tensor into a Record.  The
// tensor holds NumLandmarks groups of 5 values: x, y, z in tensor input
// pixel space followed by visibility and presence logits.  Coordinates are
// normalized to [0,1] and visibility is squashed through a sigmoid.
func decodeLandmarks(data []float32, inputSize int) Record {

	if len(data) < NumLandmarks*5 {
		return nil
	}

	rec := make(Record, NumLandmarks)

	for i := 0; i < NumLandmarks; i++ {
		off := i * 5

		rec[i] = Landmark{
			X:   float64(data[off]) / float64(inputSize),
			Y:   float64(data[off+1]) / float64(inputSize),
			Z:   float64(data[off+2]) / float64(inputSize),
			Vis: sigmoid(float64(data[off+3])),
		}
	}

	return rec
}

// sigmoid squashes a logit into the range (0,1)
func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
