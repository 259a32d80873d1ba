// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revuhq/revu/internal/platform/middleware"
	requestutil "github.com/revuhq/revu/internal/platform/request"
	"github.com/revuhq/revu/internal/platform/respond"
	"github.com/revuhq/revu/internal/platform/validate"
	"github.com/revuhq/revu/pkg/pagination"
)

// Handler implements comment HTTP endpoints, mounted under a review.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] for comments nested under
// /titles/{titleID}/reviews/{reviewID}/comments.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{commentID}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/{commentID}", handler.update)
		r.Delete("/{commentID}", handler.delete)
	})

	return router
}

type commentRequest struct {
	Text string `json:"text"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")
	params := pagination.FromRequest(request)

	comments, total, err := handler.commentService.List(request.Context(), titleID, reviewID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")
	commentID := requestutil.Param(request, "commentID")

	c, err := handler.commentService.Get(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, c)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("text", input.Text).
		MaxLen("text", input.Text, MaxTextLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.commentService.Create(request.Context(), requestutil.Actor(request), titleID, reviewID, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, c)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")
	commentID := requestutil.Param(request, "commentID")

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("text", input.Text).
		MaxLen("text", input.Text, MaxTextLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.commentService.Update(request.Context(), requestutil.Actor(request), titleID, reviewID, commentID, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, c)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")
	commentID := requestutil.Param(request, "commentID")

	err := handler.commentService.Delete(request.Context(), requestutil.Actor(request), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
