// Package imageio moves height fields in and out of greyscale images.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/ob6160/DropletErosion/terrain"
	"github.com/ob6160/DropletErosion/utils"
	"github.com/pkg/errors"
	"gopkg.in/src-d/go-billy.v4"
)

// Code classifies a boundary failure.
type Code int

const (
	CodeOpen Code = iota + 1
	CodeDecode
	CodeCreate
	CodeEncode
)

var codeText = map[Code]string{
	CodeOpen:   "cannot open file",
	CodeDecode: "invalid image data",
	CodeCreate: "cannot create file",
	CodeEncode: "failed to write image",
}

func (c Code) String() string {
	if text, ok := codeText[c]; ok {
		return text
	}
	return fmt.Sprintf("code %d", int(c))
}

type Error struct {
	Code Code
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Cause() error {
	return e.Err
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load decodes a PNG or JPEG image and reads the red channel of every
// pixel as the height of the matching cell.
func Load(fs billy.Filesystem, path string) (*terrain.HeightField, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, &Error{Code: CodeOpen, Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, &Error{Code: CodeDecode, Op: "decode", Path: path, Err: errors.Wrap(err, "decode image")}
	}
	if img.Bounds().Empty() {
		return nil, &Error{Code: CodeDecode, Op: "decode", Path: path, Err: errors.Errorf("empty %s image", format)}
	}
	return FromImage(img), nil
}

func FromImage(img image.Image) *terrain.HeightField {
	var bounds = img.Bounds()
	var width, height = bounds.Dx(), bounds.Dy()
	var field = terrain.NewHeightField(width, height)
	for x := 0; x < height; x++ {
		for y := 0; y < width; y++ {
			r, _, _, _ := img.At(bounds.Min.X+y, bounds.Min.Y+x).RGBA()
			field.Set(utils.Point{X: x, Y: y}, float32(r>>8))
		}
	}
	return field
}

// ToImage renders the field as an opaque greyscale RGBA image.
func ToImage(field *terrain.HeightField) *image.RGBA {
	var width, height = field.Dimensions()
	var img = image.NewRGBA(image.Rect(0, 0, width, height))
	for i, s := range field.Samples() {
		img.SetRGBA(i%width, i/width, color.RGBA{R: s, G: s, B: s, A: 255})
	}
	return img
}

// EncoderFor picks an encoder from the file extension, PNG unless the path
// names a JPEG.
func EncoderFor(path string) imgio.Encoder {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(95)
	default:
		return imgio.PNGEncoder()
	}
}

// Save writes the field to path. The parent directory must already exist.
func Save(fs billy.Filesystem, path string, field *terrain.HeightField) error {
	if dir := filepath.Dir(path); dir != "." && dir != string(filepath.Separator) {
		if _, err := fs.Stat(dir); err != nil {
			return &Error{Code: CodeCreate, Op: "create", Path: path, Err: errors.Wrap(err, "output directory")}
		}
	}

	f, err := fs.Create(path)
	if err != nil {
		return &Error{Code: CodeCreate, Op: "create", Path: path, Err: err}
	}

	if err := EncoderFor(path)(f, ToImage(field)); err != nil {
		f.Close()
		return &Error{Code: CodeEncode, Op: "encode", Path: path, Err: errors.Wrap(err, "encode image")}
	}
	if err := f.Close(); err != nil {
		return &Error{Code: CodeEncode, Op: "close", Path: path, Err: err}
	}
	return nil
}
