package ocr

import (
	"bytes"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"go-trivia-watcher/internal/apperrors"
)

// SegmentationMode selects the page segmentation hint handed to the engine.
type SegmentationMode int

const (
	// SegmentSingleBlock treats the bitmap as one uniform block of text
	// (the question region).
	SegmentSingleBlock SegmentationMode = iota
	// SegmentSingleColumn treats the bitmap as a single column of text of
	// variable sizes (the stacked answer buttons).
	SegmentSingleColumn
)

// Engine recognizes text in a binarized bitmap.
type Engine interface {
	Recognize(img *image.Gray, mode SegmentationMode) (string, error)
}

// Tesseract implements Engine on top of gosseract.
type Tesseract struct {
	languages    []string
	tessdataPath string
}

func NewTesseract(languages []string, tessdataPath string) *Tesseract {
	if len(languages) == 0 {
		languages = []string{"rus", "eng"}
	}
	return &Tesseract{languages: languages, tessdataPath: tessdataPath}
}

func (t *Tesseract) Recognize(img *image.Gray, mode SegmentationMode) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", apperrors.NewOCRError("failed to encode bitmap", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages...); err != nil {
		return "", apperrors.NewOCRError("failed to set languages", err)
	}
	if t.tessdataPath != "" {
		if err := client.SetTessdataPrefix(t.tessdataPath); err != nil {
			return "", apperrors.NewOCRError("failed to set tessdata prefix", err)
		}
	}
	if err := client.SetPageSegMode(pageSegMode(mode)); err != nil {
		return "", apperrors.NewOCRError("failed to set segmentation mode", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", apperrors.NewOCRError("failed to load bitmap", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", apperrors.NewOCRError("recognition failed", err)
	}
	return text, nil
}

func pageSegMode(mode SegmentationMode) gosseract.PageSegMode {
	if mode == SegmentSingleColumn {
		return gosseract.PSM_SINGLE_COLUMN
	}
	return gosseract.PSM_SINGLE_BLOCK
}
