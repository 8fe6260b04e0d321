package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/posts-api/internal/api/middleware"
	"github.com/phrazzld/posts-api/internal/api/pipeline"
	"github.com/phrazzld/posts-api/internal/api/shared"
	"github.com/phrazzld/posts-api/internal/domain"
	"github.com/phrazzld/posts-api/internal/service"
)

// Client messages for malformed path and query parameters.
const (
	InvalidPostIDMessage     = "Invalid post ID format"
	InvalidPaginationMessage = "limit and offset must be non-negative integers"
)

// Controller registers its routes on a router.
type Controller interface {
	Mount(r chi.Router)
}

// PostHandler serves the /posts resource.
type PostHandler struct {
	posts    service.PostService
	funnel   *pipeline.Funnel
	gateOpts []middleware.GateOption
}

// NewPostHandler creates a PostHandler. gateOpts are applied to every
// validation gate the handler registers.
func NewPostHandler(posts service.PostService, funnel *pipeline.Funnel, gateOpts ...middleware.GateOption) *PostHandler {
	return &PostHandler{
		posts:    posts,
		funnel:   funnel,
		gateOpts: gateOpts,
	}
}

// Mount registers the post routes on r.
func (h *PostHandler) Mount(r chi.Router) {
	r.Get("/posts", pipeline.Handle(h.funnel, h.ListPosts))
	r.Post("/posts", pipeline.Handle(h.funnel, h.CreatePost, middleware.Validate(CreatePost, h.gateOpts...)))
	r.Get("/posts/{id}", pipeline.Handle(h.funnel, h.GetPost))
	r.Patch("/posts/{id}", pipeline.Handle(h.funnel, h.UpdatePost, middleware.ValidatePartial(UpdatePost, h.gateOpts...)))
	r.Delete("/posts/{id}", pipeline.Handle(h.funnel, h.DeletePost))
}

// ListPosts handles GET /posts.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) error {
	limit, err := queryInt(r, "limit", service.DefaultListLimit)
	if err != nil {
		return err
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		return err
	}
	if limit == 0 {
		limit = service.DefaultListLimit
	}
	if limit > service.MaxListLimit {
		limit = service.MaxListLimit
	}

	posts, err := h.posts.List(r.Context(), limit, offset)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postsToResponse(posts, limit, offset))
	return nil
}

// GetPost handles GET /posts/{id}.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) error {
	id, err := pathPostID(r)
	if err != nil {
		return err
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		return fmt.Errorf("get post %s: %w", id, err)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
	return nil
}

// CreatePost handles POST /posts. The body has been checked by the
// CreatePost gate.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) error {
	var req CreatePostRequest
	if err := decodeInstance(r, &req); err != nil {
		return err
	}

	post, err := h.posts.Create(r.Context(), req.Title, req.Content)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, postToResponse(post))
	return nil
}

// UpdatePost handles PATCH /posts/{id}.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) error {
	id, err := pathPostID(r)
	if err != nil {
		return err
	}

	var patch domain.PostPatch
	if err := decodeInstance(r, &patch); err != nil {
		return err
	}

	post, err := h.posts.Update(r.Context(), id, patch)
	if err != nil {
		return fmt.Errorf("update post %s: %w", id, err)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
	return nil
}

// DeletePost handles DELETE /posts/{id}.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) error {
	id, err := pathPostID(r)
	if err != nil {
		return err
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func pathPostID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, shared.WrapHTTPError(http.StatusBadRequest, InvalidPostIDMessage, domain.ErrInvalidID)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, shared.WrapHTTPError(http.StatusBadRequest, InvalidPaginationMessage, err)
	}
	return n, nil
}

// decodeInstance copies the validated body into dst. A missing instance
// means the route was registered without a gate.
func decodeInstance(r *http.Request, dst any) error {
	inst, ok := middleware.InstanceFromContext(r.Context())
	if !ok {
		return fmt.Errorf("%s %s: no validated body in context", r.Method, r.URL.Path)
	}
	if err := inst.Decode(dst); err != nil {
		return shared.WrapHTTPError(http.StatusBadRequest, middleware.InvalidRequestFormatMessage, err)
	}
	return nil
}
