// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revuhq/revu/internal/platform/middleware"
	requestutil "github.com/revuhq/revu/internal/platform/request"
	"github.com/revuhq/revu/internal/platform/respond"
	"github.com/revuhq/revu/internal/platform/validate"
	"github.com/revuhq/revu/pkg/pagination"
)

// Handler implements review HTTP endpoints, mounted under a title.
type Handler struct {
	reviewService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Routes returns a [chi.Router] for reviews nested under
// /titles/{titleID}/reviews.
//
// # Endpoints
//   - GET    /           : Public listing
//   - GET    /{reviewID} : Public detail view
//   - POST   /           : Authenticated users
//   - PATCH  /{reviewID} : Author, moderator or admin
//   - DELETE /{reviewID} : Author, moderator or admin
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{reviewID}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/{reviewID}", handler.update)
		r.Delete("/{reviewID}", handler.delete)
	})

	return router
}

// # Request Payloads

type createReviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type updateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	params := pagination.FromRequest(request)

	reviews, total, err := handler.reviewService.List(request.Context(), titleID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")

	r, err := handler.reviewService.Get(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, r)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")

	var input createReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("text", input.Text).
		MaxLen("text", input.Text, MaxTextLength).
		Range("score", input.Score, MinScore, MaxScore)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, err := handler.reviewService.Create(request.Context(), requestutil.Actor(request), titleID, CreateReviewInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, r)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")

	var input updateReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Text != nil {
		validator.Required("text", *input.Text).
			MaxLen("text", *input.Text, MaxTextLength)
	}
	if input.Score != nil {
		validator.Range("score", *input.Score, MinScore, MaxScore)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	r, err := handler.reviewService.Update(request.Context(), requestutil.Actor(request), titleID, reviewID, UpdateReviewInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, r)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")

	err := handler.reviewService.Delete(request.Context(), requestutil.Actor(request), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
