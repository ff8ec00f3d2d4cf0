package contractdoc

import (
	"bytes"
	"image/png"

	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
)

// ValidateSignatureImage checks that a captured signature is a decodable
// PNG with at least one drawn pixel. An untouched canvas encodes to a
// fully transparent or fully white raster and is rejected.
func ValidateSignatureImage(uri string) error {
	raw, err := decodeSignatureDataURI(uri)
	if err != nil {
		return err
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "signature image is not a valid png")
	}

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			const white = 0xffff
			if r < white || g < white || b < white {
				return nil
			}
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "signature image is blank")
}
