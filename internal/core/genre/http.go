package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mixlist/mixlist/internal/platform/middleware"
	requestutil "github.com/mixlist/mixlist/internal/platform/request"
	"github.com/mixlist/mixlist/internal/platform/respond"
	"github.com/mixlist/mixlist/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the genre endpoints. Reads are public; writes belong
// to the Management and Administrator roles.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listGenres)
	router.Get("/{id}", handler.getGenre)

	writers := middleware.RequireRole(sec.RoleManagement, sec.RoleAdministrator)
	router.With(writers).Post("/", handler.createGenre)
	router.With(writers).Put("/{id}", handler.updateGenre)
	router.With(writers).Delete("/{id}", handler.deleteGenre)
}

type nameInput struct {
	Name string `json:"name"`
}

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, genres)
}

func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	g, err := handler.service.Get(request.Context(), genreID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, g)
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input nameInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	g, err := handler.service.Create(request.Context(), actor, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, g)
}

func (handler *Handler) updateGenre(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	genreID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input nameInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	g, err := handler.service.Update(request.Context(), actor, genreID, input.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, g)
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	genreID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actor, genreID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
