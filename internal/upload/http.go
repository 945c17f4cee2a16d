// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package upload

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/constants"
	"github.com/mixlist/mixlist/internal/platform/middleware"
	requestutil "github.com/mixlist/mixlist/internal/platform/request"
	"github.com/mixlist/mixlist/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the upload endpoints. Both require an authenticated
// principal; any registered account may manage cover art for its own content.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.RequireAuth).Post("/", handler.store)
	router.With(middleware.RequireAuth).Delete("/{filename}", handler.remove)
}

/*
POST /api/uploads.

Description: Accepts one multipart image (form field "file", max 5 MB) and
stores it under the upload directory. An optional "folder" form field places
the file in a subfolder.

Response:
  - 201: StoredFile: Final filename and public URL
  - 400: VALIDATION_ERROR: Missing file, oversize body, or bad file type
  - 401: UNAUTHORIZED: Authentication required
*/
func (handler *Handler) store(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredPrincipal(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes)
	if err := request.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, apperr.ValidationError("File too large. Maximum size is 5 MB"))
			return
		}
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart request"))
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("No file uploaded"))
		return
	}
	defer file.Close()

	stored, err := handler.service.Save(request.Context(), request.FormValue("folder"), header.Filename, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, stored)
}

/*
DELETE /api/uploads/{filename}.

Description: Removes a stored file by name. An optional "folder" query
parameter selects the subfolder it was stored in.

Response:
  - 204: No Content: Success
  - 401: UNAUTHORIZED: Authentication required
  - 404: NOT_FOUND: File not found
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredPrincipal(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	filename := requestutil.Param(request, "filename")
	if err := handler.service.Delete(request.Context(), request.URL.Query().Get("folder"), filename); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
