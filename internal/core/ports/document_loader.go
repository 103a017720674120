package ports

import "go.trai.ch/inkcache/internal/core/domain"

// DocumentLoader walks a source document and returns its drawable nodes.
//
//go:generate go run go.uber.org/mock/mockgen -source=document_loader.go -destination=mocks/mock_document_loader.go -package=mocks
type DocumentLoader interface {
	// Load reads the document at path. Nodes are returned in encounter order.
	Load(path string) (*domain.Document, error)
}
