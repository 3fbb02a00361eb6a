package source

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"go-trivia-watcher/internal/apperrors"
)

// BlobSource replays a recorded capture streamed from Azure Blob Storage.
type BlobSource struct {
	client    *azblob.Client
	container string
	blob      string
}

func NewBlobSource(accountName, accountKey, container, blob string) (*BlobSource, error) {
	if accountName == "" || accountKey == "" || container == "" || blob == "" {
		return nil, apperrors.NewValidationError("azure source requires account, key, container and blob", nil)
	}

	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, apperrors.NewStreamError("invalid azure credentials", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, apperrors.NewStreamError("failed to create azure client", err)
	}

	return &BlobSource{client: client, container: container, blob: blob}, nil
}

func (s *BlobSource) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, s.blob, nil)
	if err != nil {
		return nil, apperrors.NewStreamError("blob download failed", err)
	}
	return resp.Body, nil
}
