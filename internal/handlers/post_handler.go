package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/blog-cms/internal/enrich"
	"github.com/yourusername/blog-cms/internal/models"
	"github.com/yourusername/blog-cms/internal/pagination"
	"github.com/yourusername/blog-cms/internal/render"
	"github.com/yourusername/blog-cms/internal/session"
)

// pageLimit is the fixed page size of both listing surfaces.
const pageLimit = 10

// adminPostListURL is where successful admin actions send the user
// next.
const adminPostListURL = "/admin/post/list"

// PostStore is the post persistence surface the handlers depend on.
type PostStore interface {
	GetPostsAndCount(ctx context.Context, page, pageSize int) ([]models.Post, int, error)
	GetPostByID(ctx context.Context, id int) (*models.Post, error)
	CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req *models.UpdatePostRequest) (int64, error)
	DeletePostByID(ctx context.Context, id int) error
}

// CategoryStore is the category lookup surface the handlers depend on.
type CategoryStore interface {
	GetCategoryByID(ctx context.Context, id int) (*models.Category, error)
	GetAllCategories(ctx context.Context) ([]models.Category, error)
}

type PostHandler struct {
	posts      PostStore
	categories CategoryStore
	enricher   *enrich.Enricher
	renderer   render.Renderer
}

func NewPostHandler(posts PostStore, categories CategoryStore, renderer render.Renderer) *PostHandler {
	return &PostHandler{
		posts:      posts,
		categories: categories,
		enricher:   enrich.NewEnricher(categories),
		renderer:   renderer,
	}
}

// RedirectPosts handles GET / by sending the visitor to the post
// listing.
func (h *PostHandler) RedirectPosts(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/posts", http.StatusFound)
}

// GetPosts handles GET /posts and GET /posts/{page}, the public post
// listing. Any failure answers with a JSON error body, never an HTML
// error page.
func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	page := pagination.ParsePage(mux.Vars(r)["page"])

	posts, count, err := h.posts.GetPostsAndCount(r.Context(), page, pageLimit)
	if err != nil {
		h.listError(w, err)
		return
	}
	pg := pagination.Compute(page, pageLimit, count)

	views, err := h.enricher.Enrich(r.Context(), posts)
	if err != nil {
		h.listError(w, err)
		return
	}

	vm := models.PostListView{
		Session: session.FromContext(r.Context()),
		Posts:   views,
		Count:   count,
		Page:    pg.Current,
		Pages:   pg.Pages,
		Limit:   pageLimit,
	}
	if err := h.renderer.HTML(w, http.StatusOK, "blog/posts.html", vm); err != nil {
		h.listError(w, err)
	}
}

// GetPost handles GET /post?id=, the public post detail page. A post
// that does not exist renders the generic 404 page.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		log.Warn().Str("id", r.URL.Query().Get("id")).Msg("Post detail requested with unusable id")
		h.NotFound(w, r)
		return
	}

	post, err := h.posts.GetPostByID(r.Context(), id)
	if err != nil {
		h.listError(w, err)
		return
	}
	if post == nil {
		log.Warn().Int("id", id).Msg("Post not found")
		h.NotFound(w, r)
		return
	}

	if err := h.renderer.HTML(w, http.StatusOK, "blog/post.html", models.PostDetailView{Post: post}); err != nil {
		h.listError(w, err)
	}
}

// NotFound renders the generic 404 page. It doubles as the router's
// fallback handler.
func (h *PostHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.HTML(w, http.StatusNotFound, "error/404.html", nil); err != nil {
		log.Error().Err(err).Msg("Failed to render 404 page")
		http.NotFound(w, r)
	}
}

// PostListPage handles GET /admin/post/list. Unlike the public
// listing, failures propagate to the surrounding ErrorPage adapter.
func (h *PostHandler) PostListPage(w http.ResponseWriter, r *http.Request) error {
	page := pagination.ParsePage(r.URL.Query().Get("page"))

	posts, count, err := h.posts.GetPostsAndCount(r.Context(), page, pageLimit)
	if err != nil {
		return fmt.Errorf("failed to load admin post list: %w", err)
	}
	pg := pagination.Compute(page, pageLimit, count)

	views, err := h.enricher.Enrich(r.Context(), posts)
	if err != nil {
		return fmt.Errorf("failed to enrich admin post list: %w", err)
	}

	vm := models.PostListView{
		Posts: views,
		Count: count,
		Page:  pg.Current,
		Pages: pg.Pages,
		Limit: pageLimit,
	}
	return h.renderer.HTML(w, http.StatusOK, "admin/post_list.html", vm)
}

// PostAddPage handles GET /admin/post/add.
func (h *PostHandler) PostAddPage(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.categories.GetAllCategories(r.Context())
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	return h.renderer.HTML(w, http.StatusOK, "admin/post_add.html", models.PostAddView{Categories: categories})
}

// PostEditPage handles GET /admin/post/edit?id=. A missing or unusable
// id renders the admin error page without touching the stores.
func (h *PostHandler) PostEditPage(w http.ResponseWriter, r *http.Request) error {
	rawID := r.URL.Query().Get("id")
	if rawID == "" {
		return h.renderer.HTML(w, http.StatusOK, "admin/error.html", models.AdminErrorView{Message: "missing post id"})
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return h.renderer.HTML(w, http.StatusOK, "admin/error.html", models.AdminErrorView{Message: fmt.Sprintf("invalid post id %q", rawID)})
	}

	post, err := h.posts.GetPostByID(r.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to load post %d: %w", id, err)
	}
	categories, err := h.categories.GetAllCategories(r.Context())
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	if post == nil {
		return h.renderer.HTML(w, http.StatusOK, "admin/error.html", models.AdminErrorView{Message: fmt.Sprintf("no post found with id %d", id)})
	}
	return h.renderer.HTML(w, http.StatusOK, "admin/post_edit.html", models.PostEditView{Post: post, Categories: categories})
}

// CreatePost handles POST /admin/post/create. An empty title is
// rejected before the store is called.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	if title == "" {
		h.adminError(w, "post title must not be empty")
		return
	}
	categoryID, _ := strconv.Atoi(r.FormValue("category_id"))

	_, err := h.posts.CreatePost(r.Context(), &models.CreatePostRequest{
		Title:      title,
		Content:    r.FormValue("content"),
		CategoryID: categoryID,
	})
	if err != nil {
		h.adminError(w, err.Error())
		return
	}

	h.adminSuccess(w, "post created", adminPostListURL)
}

// EditPost handles POST /admin/post/edit?id=. A missing id answers
// with a plain JSON message body; this flow is the one admin mutation
// that does not use the admin error page for that case.
func (h *PostHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("id")
	if rawID == "" {
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "missing id"})
		return
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		h.adminError(w, fmt.Sprintf("invalid post id %q", rawID))
		return
	}

	categoryID, _ := strconv.Atoi(r.FormValue("category_id"))
	affected, err := h.posts.UpdatePost(r.Context(), &models.UpdatePostRequest{
		ID:         id,
		Title:      r.FormValue("title"),
		Content:    r.FormValue("content"),
		CategoryID: categoryID,
	})
	if err != nil {
		h.adminError(w, err.Error())
		return
	}

	// Success is exactly one affected row. Zero rows means the id
	// matched nothing; no success view is rendered for it.
	if affected == 1 {
		h.adminSuccess(w, "post updated", fmt.Sprintf("/admin/post/edit?id=%d", id))
		return
	}
	log.Warn().Int("id", id).Int64("affected", affected).Msg("Update matched no post")
}

// DeletePost handles GET /admin/post/delete?id=. Deleting an id with
// no matching post still reports success; the store treats it as a
// no-op.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("id")
	if rawID == "" {
		h.adminError(w, "missing post id")
		return
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		h.adminError(w, fmt.Sprintf("invalid post id %q", rawID))
		return
	}

	if err := h.posts.DeletePostByID(r.Context(), id); err != nil {
		h.adminError(w, err.Error())
		return
	}

	h.adminSuccess(w, "post deleted", adminPostListURL)
}

// listError answers a failed public request with the JSON error body.
func (h *PostHandler) listError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Public post request failed")
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Code: 500, Err: err.Error()})
}

func (h *PostHandler) adminError(w http.ResponseWriter, message string) {
	if err := h.renderer.HTML(w, http.StatusOK, "admin/error.html", models.AdminErrorView{Message: message}); err != nil {
		log.Error().Err(err).Msg("Failed to render admin error page")
	}
}

func (h *PostHandler) adminSuccess(w http.ResponseWriter, message, url string) {
	if err := h.renderer.HTML(w, http.StatusOK, "admin/success.html", models.AdminSuccessView{Message: message, URL: url}); err != nil {
		log.Error().Err(err).Msg("Failed to render admin success page")
	}
}
