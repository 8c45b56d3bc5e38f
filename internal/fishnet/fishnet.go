// fishnet.go FishNet model specific code
package fishnet

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/fishfinder/fishfinder-go/internal/catalog"
	"github.com/fishfinder/fishfinder-go/internal/conf"
	"github.com/fishfinder/fishfinder-go/internal/errors"
	"github.com/fishfinder/fishfinder-go/internal/logging"
	tflite "github.com/tphakala/go-tflite"
	"github.com/tphakala/go-tflite/delegates/xnnpack"
)

// ErrorLabel is the sentinel label returned when inference fails. It flows
// through the pipeline as a zero-confidence, review-flagged result instead
// of failing the task.
const ErrorLabel = "Error"

// Prediction is the classifier output for one image. On the sentinel path
// Label is ErrorLabel, Confidence is 0 and Err carries the failure reason.
type Prediction struct {
	Label      string
	Confidence float64
	Err        error
}

// FishNet owns the loaded TFLite model. The load is expensive and amortized
// across all Classify calls within the process; the struct is safe for use
// by a single worker, interpreter access is mutex guarded.
type FishNet struct {
	interpreter *tflite.Interpreter
	labels      []string
	mu          sync.Mutex
}

// New loads the model weights and initializes the interpreter once at
// process start. The label index space is defined by the catalog's sorted
// label list; New refuses to start when the model head disagrees.
func New(settings *conf.Settings, cat *catalog.Catalog) (*FishNet, error) {
	fn := &FishNet{
		labels: cat.Labels(),
	}

	if err := fn.initializeModel(settings); err != nil {
		return nil, errors.Wrap(err).
			Component("fishnet").
			Category(errors.CategoryModelInit).
			Context("model_path", settings.Model.Path).
			Build()
	}

	if err := fn.validateModelAndLabels(); err != nil {
		return nil, err
	}

	return fn, nil
}

// initializeModel loads and initializes the TFLite model.
func (fn *FishNet) initializeModel(settings *conf.Settings) error {
	start := time.Now()
	log := logging.ForService("fishnet")

	modelData, err := os.ReadFile(settings.Model.Path)
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryModelLoad).
			Context("path", settings.Model.Path).
			Build()
	}

	model := tflite.NewModel(modelData)
	if model == nil {
		return errors.Newf("cannot load TensorFlow Lite model").
			Category(errors.CategoryModelInit).
			Context("model_size_mb", len(modelData)/1024/1024).
			Build()
	}

	threads := settings.Model.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	options := tflite.NewInterpreterOptions()
	if settings.Model.UseXNNPACK {
		delegate := xnnpack.New(xnnpack.DelegateOptions{NumThreads: int32(max(1, threads-1))})
		if delegate == nil {
			log.Warn("Failed to create XNNPACK delegate, falling back to default CPU")
			options.SetNumThread(threads)
		} else {
			options.AddDelegate(delegate)
			options.SetNumThread(1)
		}
	} else {
		options.SetNumThread(threads)
	}

	options.SetErrorReporter(func(msg string, user_data any) {
		logging.ForService("fishnet").Error("TFLite error", "message", msg)
	}, nil)

	fn.interpreter = tflite.NewInterpreter(model, options)
	if fn.interpreter == nil {
		return fmt.Errorf("cannot create interpreter")
	}
	if status := fn.interpreter.AllocateTensors(); status != tflite.OK {
		return fmt.Errorf("tensor allocation failed")
	}

	// The model data is no longer needed, TFLite keeps its own copy.
	runtime.GC()

	log.Info("FishNet model initialized",
		"model", settings.Model.Path,
		"labels", len(fn.labels),
		"threads", threads,
		"load_time", time.Since(start).String())
	return nil
}

// validateModelAndLabels checks that the model's output size matches the
// catalog label count. A mismatch would silently mislabel every prediction.
func (fn *FishNet) validateModelAndLabels() error {
	outputTensor := fn.interpreter.GetOutputTensor(0)
	if outputTensor == nil {
		return errors.Newf("cannot get output tensor from model").
			Component("fishnet").
			Category(errors.CategoryValidation).
			Build()
	}

	modelOutputSize := outputTensor.Dim(outputTensor.NumDims() - 1)
	if len(fn.labels) != modelOutputSize {
		return errors.Newf("label count mismatch: model expects %d classes but catalog has %d labels",
			modelOutputSize, len(fn.labels)).
			Component("fishnet").
			Category(errors.CategoryValidation).
			Context("model_classes", modelOutputSize).
			Context("catalog_labels", len(fn.labels)).
			Build()
	}

	return nil
}

// Classify runs inference on the image at imagePath. It never returns a Go
// error: any internal failure (corrupt image, preprocessing fault, model
// runtime fault) produces the sentinel prediction so the pipeline still
// yields a reviewable result. This deliberately distinguishes inference
// failures from transport failures.
func (fn *FishNet) Classify(imagePath string) Prediction {
	input, err := preprocessImageFile(imagePath)
	if err != nil {
		logging.ForService("fishnet").Error("Image preprocessing failed",
			"path", imagePath, "error", err)
		return Prediction{Label: ErrorLabel, Confidence: 0, Err: err}
	}

	probabilities, err := fn.invoke(input)
	if err != nil {
		logging.ForService("fishnet").Error("Inference failed",
			"path", imagePath, "error", err)
		return Prediction{Label: ErrorLabel, Confidence: 0, Err: err}
	}

	idx, confidence := argmax(probabilities)
	return Prediction{
		Label:      fn.labels[idx],
		Confidence: confidence,
	}
}

// invoke runs the interpreter over a preprocessed input tensor and returns
// the softmax probability distribution over all labels.
func (fn *FishNet) invoke(input []float32) ([]float64, error) {
	fn.mu.Lock()
	defer fn.mu.Unlock()

	inputTensor := fn.interpreter.GetInputTensor(0)
	if inputTensor == nil {
		return nil, fmt.Errorf("cannot get input tensor")
	}
	copy(inputTensor.Float32s(), input)

	if status := fn.interpreter.Invoke(); status != tflite.OK {
		return nil, fmt.Errorf("tensor invoke failed: %v", status)
	}

	outputTensor := fn.interpreter.GetOutputTensor(0)
	if outputTensor == nil {
		return nil, fmt.Errorf("cannot get output tensor")
	}
	logits := extractLogits(outputTensor)
	if len(logits) != len(fn.labels) {
		return nil, fmt.Errorf("mismatched labels and predictions lengths: %d vs %d", len(fn.labels), len(logits))
	}

	return softmax(logits), nil
}

// extractLogits extracts the raw scores from a TensorFlow Lite tensor.
func extractLogits(tensor *tflite.Tensor) []float32 {
	size := tensor.Dim(tensor.NumDims() - 1)
	logits := make([]float32, size)
	copy(logits, tensor.Float32s())
	return logits
}
