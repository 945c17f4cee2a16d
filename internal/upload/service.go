// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

/*
Package upload stores user-submitted cover art on the local filesystem.

Files land under the configured upload directory, optionally inside a
per-feature subfolder (e.g. "covers"). Filenames are sanitized through the
slug pipeline so a hostile "../../etc/passwd.png" can never escape the
upload root, and stored files are served statically by the API server.
*/
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/metrics"
	"github.com/mixlist/mixlist/pkg/slug"
)

// allowedExtensions lists the image types accepted for cover art.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// StoredFile describes a persisted upload.
type StoredFile struct {
	// Filename is the sanitized name under the upload directory.
	Filename string `json:"filename"`
	// URL is the public path the file is served from.
	URL string `json:"url"`
	// Size is the stored size in bytes.
	Size int64 `json:"size"`
}

// Service writes and removes files beneath a single upload root.
type Service struct {
	root   string
	logger *slog.Logger
}

// NewService constructs the upload service. The root directory is created on
// first use, not here, so a missing directory surfaces as a request error
// rather than a boot failure.
func NewService(root string, logger *slog.Logger) *Service {
	return &Service{
		root:   root,
		logger: logger,
	}
}

/*
Save persists an uploaded file under root/subfolder with a sanitized,
timestamp-prefixed filename.

Parameters:
  - context: context.Context
  - subfolder: string (optional; sanitized, "" stores at the root)
  - filename: string (client-supplied original name)
  - source: io.Reader (file content, size-capped by the HTTP layer)

Returns:
  - *StoredFile: Final name, public URL and size
  - error: Validation or filesystem failures
*/
func (service *Service) Save(context context.Context, subfolder, filename string, source io.Reader) (*StoredFile, error) {
	name, err := sanitizeFilename(filename)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	folder, err := sanitizeSubfolder(subfolder)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	// Timestamp prefix keeps concurrent uploads of "cover.png" distinct.
	name = fmt.Sprintf("%d-%s", time.Now().UnixMilli(), name)

	directory := service.root
	if folder != "" {
		directory = filepath.Join(service.root, folder)
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, apperr.Internal(fmt.Errorf("create upload directory: %w", err))
	}

	destination := filepath.Join(directory, name)
	file, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("create upload file: %w", err))
	}

	written, err := io.Copy(file, source)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// A half-written file is worthless; remove it.
		_ = os.Remove(destination)
		return nil, apperr.Internal(fmt.Errorf("write upload file: %w", err))
	}

	metrics.UploadsTotal.WithLabelValues("stored").Inc()
	service.logger.InfoContext(context, "file_uploaded",
		slog.String("filename", name),
		slog.String("subfolder", folder),
		slog.Int64("bytes", written),
	)

	url := "/uploads/" + name
	if folder != "" {
		url = "/uploads/" + folder + "/" + name
	}

	return &StoredFile{
		Filename: name,
		URL:      url,
		Size:     written,
	}, nil
}

/*
Delete removes a previously stored file by name.

Parameters:
  - context: context.Context
  - subfolder: string (optional)
  - filename: string (name returned by Save)

Returns:
  - error: NotFound when the file does not exist, filesystem failures otherwise
*/
func (service *Service) Delete(context context.Context, subfolder, filename string) error {
	folder, err := sanitizeSubfolder(subfolder)
	if err != nil {
		return err
	}

	// The stored name is already sanitized; reject anything that could not
	// have come out of Save.
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return apperr.ValidationError("Invalid filename")
	}

	target := filepath.Join(service.root, folder, filename)
	if err := os.Remove(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.NotFound("File")
		}
		return apperr.Internal(fmt.Errorf("remove upload file: %w", err))
	}

	service.logger.InfoContext(context, "file_deleted",
		slog.String("filename", filename),
		slog.String("subfolder", folder),
	)
	return nil
}

// sanitizeFilename slugs the stem and keeps a whitelisted image extension.
func sanitizeFilename(filename string) (string, error) {
	extension := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[extension] {
		return "", apperr.ValidationError("Invalid file type. Only JPG, PNG, GIF and WebP images are allowed")
	}

	stem := slug.From(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if stem == "" {
		stem = "upload"
	}

	return stem + extension, nil
}

// sanitizeSubfolder slugs the folder name; one level only, no separators.
func sanitizeSubfolder(subfolder string) (string, error) {
	if subfolder == "" {
		return "", nil
	}
	folder := slug.From(subfolder)
	if folder == "" {
		return "", apperr.ValidationError("Invalid folder name")
	}
	return folder, nil
}
