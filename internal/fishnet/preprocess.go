// preprocess.go fixed deterministic image preprocessing pipeline
package fishnet

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// The trained weights are sensitive to these exact parameters. They must
// match the training pipeline: resize the shorter side to 256, center-crop
// 224x224, normalize per channel with the ImageNet mean and std.
const (
	resizeShorterSide = 256
	cropSize          = 224
)

var (
	channelMean = [3]float32{0.485, 0.456, 0.406}
	channelStd  = [3]float32{0.229, 0.224, 0.225}
)

// preprocessImageFile decodes the image at path and produces the flattened
// HWC float32 input tensor for the model.
func preprocessImageFile(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	return preprocess(img), nil
}

// preprocess applies the fixed resize, crop and normalization pipeline.
func preprocess(img image.Image) []float32 {
	resized := resizeShorter(img, resizeShorterSide)
	cropped := centerCrop(resized, cropSize)
	return normalize(cropped)
}

// resizeShorter scales the image so its shorter side equals target,
// preserving aspect ratio. Catmull-Rom approximates the training pipeline's
// bicubic resampling.
func resizeShorter(img image.Image, target int) *image.RGBA {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var newWidth, newHeight int
	if width < height {
		newWidth = target
		newHeight = int(float64(height) * float64(target) / float64(width))
	} else {
		newHeight = target
		newWidth = int(float64(width) * float64(target) / float64(height))
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// centerCrop extracts the centered size x size region.
func centerCrop(img *image.RGBA, size int) *image.RGBA {
	bounds := img.Bounds()
	x0 := bounds.Min.X + (bounds.Dx()-size)/2
	y0 := bounds.Min.Y + (bounds.Dy()-size)/2
	return img.SubImage(image.Rect(x0, y0, x0+size, y0+size)).(*image.RGBA)
}

// normalize flattens the crop into HWC order, scaling each channel to [0,1]
// and applying the per-channel mean and std.
func normalize(img *image.RGBA) []float32 {
	bounds := img.Bounds()
	out := make([]float32, cropSize*cropSize*3)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns 16 bit values, bring them back to 8 bit range.
			out[i] = (float32(r>>8)/255.0 - channelMean[0]) / channelStd[0]
			out[i+1] = (float32(g>>8)/255.0 - channelMean[1]) / channelStd[1]
			out[i+2] = (float32(b>>8)/255.0 - channelMean[2]) / channelStd[2]
			i += 3
		}
	}
	return out
}
