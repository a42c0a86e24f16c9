package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/powclient/internal/common"
	"github.com/dmitrijs2005/powclient/internal/cryptox"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/blobs"
)

// StorageService keeps staged content addressed by its CID.
type StorageService struct {
	blobs blobs.Repository
}

func NewStorageService(b blobs.Repository) *StorageService {
	return &StorageService{blobs: b}
}

// Stage stores data and returns its CID. Staging the same bytes twice yields
// the same CID and stores them once.
func (s *StorageService) Stage(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", common.ErrorEmptyContent
	}

	cid := cryptox.ComputeCID(data)
	if err := s.blobs.Put(ctx, cid, data); err != nil {
		return "", fmt.Errorf("stage %s: %w", cid, err)
	}
	return cid, nil
}

func (s *StorageService) Get(ctx context.Context, cid string) ([]byte, error) {
	return s.blobs.Get(ctx, cid)
}
