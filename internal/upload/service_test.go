// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package upload_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/upload"
)

func newService(t *testing.T) (*upload.Service, string) {
	t.Helper()
	root := t.TempDir()
	return upload.NewService(root, slog.New(slog.DiscardHandler)), root
}

/*
TestSave verifies storage, name sanitization, and the public URL shape.
*/
func TestSave(t *testing.T) {
	ctx := context.Background()

	t.Run("stores_at_root", func(t *testing.T) {
		service, root := newService(t)

		stored, err := service.Save(ctx, "", "My Cover.PNG", strings.NewReader("fake-png-bytes"))
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(stored.Filename, "-my-cover.png"), stored.Filename)
		assert.Equal(t, "/uploads/"+stored.Filename, stored.URL)
		assert.Equal(t, int64(len("fake-png-bytes")), stored.Size)

		content, err := os.ReadFile(filepath.Join(root, stored.Filename))
		require.NoError(t, err)
		assert.Equal(t, "fake-png-bytes", string(content))
	})

	t.Run("stores_in_subfolder", func(t *testing.T) {
		service, root := newService(t)

		stored, err := service.Save(ctx, "Covers!", "art.jpg", strings.NewReader("x"))
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(stored.URL, "/uploads/covers/"), stored.URL)
		_, err = os.Stat(filepath.Join(root, "covers", stored.Filename))
		assert.NoError(t, err)
	})

	t.Run("traversal_cannot_escape_root", func(t *testing.T) {
		service, root := newService(t)

		stored, err := service.Save(ctx, "", "../../etc/passwd.png", strings.NewReader("x"))
		require.NoError(t, err)

		// The hostile path collapses to a flat name inside the root.
		assert.NotContains(t, stored.Filename, "/")
		assert.NotContains(t, stored.Filename, "..")
		_, err = os.Stat(filepath.Join(root, stored.Filename))
		assert.NoError(t, err)
	})

	t.Run("rejects_non_image_extension", func(t *testing.T) {
		service, _ := newService(t)

		_, err := service.Save(ctx, "", "script.sh", strings.NewReader("x"))
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("unslugable_name_falls_back", func(t *testing.T) {
		service, _ := newService(t)

		stored, err := service.Save(ctx, "", "???.webp", strings.NewReader("x"))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(stored.Filename, "-upload.webp"), stored.Filename)
	})
}

/*
TestDelete verifies removal by stored name and the guard against names Save
could never have produced.
*/
func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes_stored_file", func(t *testing.T) {
		service, root := newService(t)
		stored, err := service.Save(ctx, "covers", "art.gif", strings.NewReader("x"))
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, "covers", stored.Filename))

		_, err = os.Stat(filepath.Join(root, "covers", stored.Filename))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("missing_file_not_found", func(t *testing.T) {
		service, _ := newService(t)

		err := service.Delete(ctx, "", "1234-gone.png")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("rejects_path_segments", func(t *testing.T) {
		service, _ := newService(t)

		tests := []string{"", "../escape.png", ".hidden", "a/b.png"}
		for _, name := range tests {
			err := service.Delete(ctx, "", name)
			require.Error(t, err, name)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code, name)
		}
	})
}
