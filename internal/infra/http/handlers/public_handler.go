package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aaacapital/site-api/internal/entity"
	"github.com/aaacapital/site-api/internal/infra/cache"
	"github.com/aaacapital/site-api/internal/usecase"
)

type TeamReader interface {
	ListPublished(ctx context.Context) ([]*entity.TeamMember, error)
}

type GalleryReader interface {
	ListPublished(ctx context.Context) ([]*entity.GalleryItem, error)
}

type PostReader interface {
	ListPublished(ctx context.Context) ([]*entity.Post, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*entity.Post, error)
}

type ResourceReader interface {
	ListPublished(ctx context.Context) ([]*entity.Resource, error)
}

type SettingsReader interface {
	Get(ctx context.Context) (*entity.SiteSettings, error)
}

// PublicHandler serves the published content the marketing pages render.
// Responses are cached as raw JSON by view name; admin writes invalidate
// through the queue worker.
type PublicHandler struct {
	Team      TeamReader
	Gallery   GalleryReader
	Posts     PostReader
	Resources ResourceReader
	Settings  SettingsReader
	Cache     *cache.ViewCache
}

func NewPublicHandler(team TeamReader, gallery GalleryReader, posts PostReader, resources ResourceReader, settings SettingsReader, viewCache *cache.ViewCache) *PublicHandler {
	return &PublicHandler{
		Team:      team,
		Gallery:   gallery,
		Posts:     posts,
		Resources: resources,
		Settings:  settings,
		Cache:     viewCache,
	}
}

// serveView answers from the view cache or renders via fetch and fills it.
func (h *PublicHandler) serveView(w http.ResponseWriter, r *http.Request, view string, fetch func(ctx context.Context) (any, error)) {
	if body, ok := h.Cache.Get(view); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
		return
	}

	payload, err := fetch(r.Context())
	if err != nil {
		log.Printf("[public] rendering view %s: %v", view, err)
		writeError(w, http.StatusInternalServerError, "failed to load content")
		return
	}
	if payload == nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load content")
		return
	}
	h.Cache.Set(view, body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *PublicHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "team", func(ctx context.Context) (any, error) {
		members, err := h.Team.ListPublished(ctx)
		if err != nil {
			return nil, err
		}
		if members == nil {
			members = []*entity.TeamMember{}
		}
		return members, nil
	})
}

func (h *PublicHandler) HandleGallery(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "gallery", func(ctx context.Context) (any, error) {
		items, err := h.Gallery.ListPublished(ctx)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []*entity.GalleryItem{}
		}
		return items, nil
	})
}

func (h *PublicHandler) HandlePosts(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "posts", func(ctx context.Context) (any, error) {
		posts, err := h.Posts.ListPublished(ctx)
		if err != nil {
			return nil, err
		}
		if posts == nil {
			posts = []*entity.Post{}
		}
		return posts, nil
	})
}

func (h *PublicHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if !usecase.IsValidSlug(slug) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	h.serveView(w, r, "post:"+slug, func(ctx context.Context) (any, error) {
		post, err := h.Posts.FindPublishedBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, nil
		}
		return post, nil
	})
}

func (h *PublicHandler) HandleResources(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "resources", func(ctx context.Context) (any, error) {
		resources, err := h.Resources.ListPublished(ctx)
		if err != nil {
			return nil, err
		}
		if resources == nil {
			resources = []*entity.Resource{}
		}
		return resources, nil
	})
}

func (h *PublicHandler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "settings", func(ctx context.Context) (any, error) {
		settings, err := h.Settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		if settings == nil {
			settings = entity.DefaultSiteSettings()
		}
		return settings, nil
	})
}
