package contractdoc

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
)

func encodeSignaturePNG(t *testing.T, draw bool) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if draw {
		img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 0, A: 255})
		img.Set(2, 1, color.RGBA{R: 0, G: 0, B: 0, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestValidateSignatureImageAcceptsDrawnStroke(t *testing.T) {
	if err := ValidateSignatureImage(encodeSignaturePNG(t, true)); err != nil {
		t.Fatalf("expected drawn signature to validate, got %v", err)
	}
}

func TestValidateSignatureImageRejectsBlankCanvas(t *testing.T) {
	err := ValidateSignatureImage(encodeSignaturePNG(t, false))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank canvas, got %v", err)
	}
}

func TestValidateSignatureImageRejectsNonPNGPayload(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not a png"))
	err := ValidateSignatureImage(uri)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateSignatureImageRejectsWrongScheme(t *testing.T) {
	err := ValidateSignatureImage("data:image/jpeg;base64,AAAA")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
