package dto

import (
	"time"

	"github.com/docuchain/docuchain_app/internal/core/domain"
)

// CreateDocumentRequest registers one ingested document: the OCR text plus
// the classifier's document type label.
type CreateDocumentRequest struct {
	DocType string `json:"docType" binding:"required,doctype"`
	Text    string `json:"text" binding:"required"`
	Source  string `json:"source" binding:"omitempty,max=64"`
}

// DocumentResponse is the API shape of a registered document.
type DocumentResponse struct {
	DocumentID string    `json:"documentID"`
	DocType    string    `json:"docType"`
	Source     string    `json:"source,omitempty"`
	Processed  bool      `json:"processed"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToDocumentResponse maps a domain document to its API shape.
func ToDocumentResponse(d domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: d.DocumentID,
		DocType:    string(d.DocType),
		Source:     d.Source,
		Processed:  d.Processed,
		CreatedAt:  d.CreatedAt,
	}
}

// ListDocumentsResponse wraps a page of documents.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}
