package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"contract-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// RequiredFolders lists the folders that must exist in the bucket.
var RequiredFolders = []string{"backups"}

func folderPrefix(folder string) string {
	if strings.HasSuffix(folder, "/") {
		return folder
	}
	return folder + "/"
}

// CheckStructure returns the required folders missing from the bucket.
func CheckStructure(ctx context.Context, client storage.Client, bucket string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	missing := []string{}
	for _, folder := range RequiredFolders {
		found, err := folderExists(ctx, client, bucket, folder)
		if err != nil {
			return nil, err
		}
		if !found {
			missing = append(missing, folder)
		}
	}

	return missing, nil
}

// folderExists stops the listing after the first object. The listing
// goroutine only exits once its context is cancelled and the channel drained.
func folderExists(ctx context.Context, client storage.Client, bucket, folder string) (bool, error) {
	lctx, cancel := context.WithCancel(ctx)
	ch := client.ListObjects(lctx, bucket, minio.ListObjectsOptions{
		Prefix:  folderPrefix(folder),
		MaxKeys: 1,
	})
	defer func() {
		cancel()
		for range ch {
		}
	}()

	for obj := range ch {
		if obj.Err != nil {
			return false, fmt.Errorf("failed to list %s: %w", folder, obj.Err)
		}
		return true, nil
	}
	return false, nil
}

// FixStructure creates an empty marker object for every missing folder.
func FixStructure(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		_, err := client.PutObject(ctx, bucket, folderPrefix(folder), bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return fmt.Errorf("failed to create folder %s: %w", folder, err)
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}
