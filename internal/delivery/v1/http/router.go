package http

import (
	"net/http"
	"time"

	_ "github.com/DRSN-tech/catalog-backend/docs" // Регистрирует swagger-спецификацию
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(categoryUC usecase.CategoryUC) {
	r.router.Use(middleware.RequestID, middleware.RealIP, r.requestLogger, middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		categoryHandler := NewCategoryHandler(categoryUC, r.logger)
		registerCategoryRoutes(v1, categoryHandler)
	})
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

func registerCategoryRoutes(router chi.Router, h *CategoryHandler) {
	router.Route("/categories", func(cr chi.Router) {
		cr.Post("/", h.createCategory)
		cr.Get("/", h.listCategories)
		cr.Get("/{id}", h.getCategory)
		cr.Put("/{id}", h.updateCategory)
		cr.Delete("/{id}", h.deleteCategory)
	})
}

func (r *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, req)

		r.logger.Debugf("%s %s %d %s request_id=%s",
			req.Method, req.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(req.Context()))
	})
}
