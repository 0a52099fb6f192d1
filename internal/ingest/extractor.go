// Package ingest extracts plain text from uploaded documents.
package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/samruddhip/pdfchat/internal/domain"
)

// ExtractText pulls the plain text out of a PDF, page by page in source
// order, pages joined by a newline and the result trimmed. A parser
// failure is ErrExtraction; a readable document with no usable text is
// the distinct, recoverable ErrEmptyDocument.
func ExtractText(r io.ReaderAt, size int64) (text string, err error) {
	// The parser panics on some malformed files; a broken upload must
	// surface as ErrExtraction, not take the process down.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: %v", domain.ErrExtraction, rec)
		}
	}()

	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	var pages []string
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", domain.ErrExtraction, i, err)
		}
		pages = append(pages, content)
	}

	text = strings.TrimSpace(strings.Join(pages, "\n"))
	if text == "" {
		return "", domain.ErrEmptyDocument
	}
	return text, nil
}
