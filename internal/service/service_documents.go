package service

import (
	"github.com/MKhiriev/go-field-sync/internal/store"
)

type documentService struct {
	repository store.ServerDocumentRepository
	wrappers   []DocumentStoreWrapper
}

// NewDocumentService returns group document stores decorated by wrappers,
// the first wrapper being outermost.
func NewDocumentService(repository store.ServerDocumentRepository, wrappers ...DocumentStoreWrapper) DocumentService {
	return &documentService{repository: repository, wrappers: wrappers}
}

func (s *documentService) ForGroup(groupID string) store.DocumentRepository {
	docs := s.repository.ForGroup(groupID)
	for i := len(s.wrappers) - 1; i >= 0; i-- {
		docs = s.wrappers[i].Wrap(docs)
	}
	return docs
}
