// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revuhq/revu/internal/platform/middleware"
	requestutil "github.com/revuhq/revu/internal/platform/request"
	"github.com/revuhq/revu/internal/platform/respond"
	"github.com/revuhq/revu/internal/platform/validate"
	"github.com/revuhq/revu/pkg/convert"
	"github.com/revuhq/revu/pkg/pagination"
	"github.com/revuhq/revu/pkg/query"
)

// Handler implements title HTTP endpoints.
type Handler struct {
	titleService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{titleService: service}
}

// Routes returns a [chi.Router] for the title resource.
//
// # Endpoints
//   - GET    /          : Public listing with ?search=, ?category=, ?genre=, ?year=
//   - GET    /{titleID} : Public detail view
//   - POST   /          : Admin-only creation
//   - PATCH  /{titleID} : Admin-only partial update
//   - DELETE /{titleID} : Admin-only removal
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{titleID}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Post("/", handler.create)
		r.Patch("/{titleID}", handler.update)
		r.Delete("/{titleID}", handler.delete)
	})

	return router
}

// # Request Payloads

type createTitleRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

type updateTitleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	queryValues := request.URL.Query()

	filter := Filter{
		Search:       queryValues.Get("search"),
		CategorySlug: queryValues.Get("category"),
		GenreSlugs:   query.StringSlice(queryValues.Get("genre")),
		Year:         convert.ToIntD(queryValues.Get("year"), 0),
	}

	titles, total, err := handler.titleService.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "titleID")

	t, err := handler.titleService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, t)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createTitleRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("name", input.Name).
		MaxLen("name", input.Name, MaxNameLength)
	validator.Custom("year", input.Year == 0, "Year is required")
	for _, slug := range input.Genre {
		validator.Slug("genre", slug)
	}
	if input.Category != "" {
		validator.Slug("category", input.Category)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	t, err := handler.titleService.Create(request.Context(), CreateTitleInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, t)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "titleID")

	var input updateTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required("name", *input.Name).
			MaxLen("name", *input.Name, MaxNameLength)
	}
	if input.Genre != nil {
		for _, slug := range *input.Genre {
			validator.Slug("genre", slug)
		}
	}
	if input.Category != nil && *input.Category != "" {
		validator.Slug("category", *input.Category)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	t, err := handler.titleService.Update(request.Context(), id, UpdateTitleInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, t)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "titleID")

	if err := handler.titleService.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
