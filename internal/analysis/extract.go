package analysis

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"resumint/internal/errors"
)

// ExtractText pulls plain text out of a PDF document. Pages that cannot be
// decoded are skipped; only a document yielding no text at all is an error.
func ExtractText(pdfContent []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(pdfContent), int64(len(pdfContent)))
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeExtractionFailed,
			"failed to open PDF document", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}
