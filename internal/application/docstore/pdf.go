package docstore

import (
	"context"
	"fmt"

	"github.com/amakita/arsel-docs-api/internal/domain"
	"github.com/amakita/arsel-docs-api/internal/domain/entity"
)

// DocumentPDFGenerator rend un document finalisé en PDF.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.Document) ([]byte, error)
}

// PDFUseCase exporte un document finalisé en PDF.
type PDFUseCase struct {
	store     *Store
	generator DocumentPDFGenerator
}

// NewPDFUseCase construit le cas d'usage.
func NewPDFUseCase(store *Store, generator DocumentPDFGenerator) *PDFUseCase {
	return &PDFUseCase{store: store, generator: generator}
}

// DownloadDocumentPDF génère le PDF du document identifié.
//
// Retourne:
//   - (pdfBytes, filename, nil) en cas de succès.
//   - domain.ErrNotFound si le document n'existe pas.
func (uc *PDFUseCase) DownloadDocumentPDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.store.GetDocument(id)
	if err != nil {
		return nil, "", domain.ErrNotFound
	}
	pdfBytes, err = uc.generator.GenerateDocumentPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: génération échouée: %w", err)
	}
	filename = fmt.Sprintf("%s.pdf", doc.DocumentNumber)
	return pdfBytes, filename, nil
}
