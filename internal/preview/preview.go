package preview

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/gen2brain/go-fitz" // Lightweight PDF renderer
)

// Preview is a rendered first page plus the document's page count
type Preview struct {
	FirstPageJPEG []byte
	PageCount     int
}

// FirstPage renders the first page of a PDF as a JPEG thumbnail for the
// admin review screens.
func FirstPage(pdfData []byte) (*Preview, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("failed to render first page: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("failed to encode first page: %w", err)
	}

	return &Preview{
		FirstPageJPEG: buf.Bytes(),
		PageCount:     doc.NumPage(),
	}, nil
}
