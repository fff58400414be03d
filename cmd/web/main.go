package main

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"dommatos.com/tienda-web/internal/cart"
	"dommatos.com/tienda-web/internal/catalog"
	"dommatos.com/tienda-web/internal/config"
	"dommatos.com/tienda-web/internal/content"
	"dommatos.com/tienda-web/internal/i18n"
	mw "dommatos.com/tienda-web/internal/middleware"
	"dommatos.com/tienda-web/internal/observability"
	"dommatos.com/tienda-web/internal/quote"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	devMode      bool

	appLogger     *zap.Logger
	i18nBundle    *i18n.Bundle
	catalogClient *catalog.Client
	quoteClient   *quote.Client
	cartStore     *cart.Store
	pageCache     *catalog.PageCache
	contentStore  *content.Store
)

func main() {
	cfg := config.Load()

	logger, err := observability.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	appLogger = logger

	templatesDir = cfg.Paths.Templates
	publicDir = cfg.Paths.Public
	devMode = cfg.DevMode

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	i18nBundle, err = i18n.Load(cfg.Locale.Dir, cfg.Locale.Default, cfg.Locale.Supported)
	if err != nil {
		logger.Fatal("load locales", zap.Error(err))
	}

	mw.Configure(cfg.Session.SigningKey, cfg.Session.Secure)
	catalogClient = catalog.NewClient(cfg.API.BaseURL, logger)
	quoteClient = quote.NewClient(cfg.API.BaseURL)
	cartStore = cart.NewStore(cfg.Session.SigningKey, cfg.Session.Secure)
	pageCache = catalog.NewPageCache()
	go pageCache.PurgeEvery(context.Background(), 5*time.Minute)
	contentStore = content.NewStore(cfg.Paths.Content, cfg.Locale.Default)

	r := newRouter(cfg)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("tienda-web listening", zap.String("addr", cfg.Server.Addr), zap.Bool("dev", devMode))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("listen", zap.Error(err))
	}
}

func newRouter(cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that owns it.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session)
	r.Use(mw.Locale(i18nBundle))
	r.Use(mw.CSRF)
	r.Use(mw.VaryLocale)
	r.Use(mw.Logger(appLogger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.Server.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", HomeHandler)

	r.Get("/productos", StoreHandler)
	r.Get("/productos/grid", StoreGridFrag)
	r.Get("/productos/modal/{id}", ProductModalFrag)
	r.Get("/productos/modal/{id}/cantidad", ModalQuantityFrag)

	r.Get("/carrito", CartHandler)
	r.Get("/carrito/tabla", CartTableFrag)
	r.Get("/carrito/badge", CartBadgeFrag)
	r.Post("/carrito/agregar", CartAddHandler)
	r.Post("/carrito/cantidad", CartQuantityHandler)
	r.Post("/carrito/eliminar", CartRemoveHandler)
	r.Post("/carrito/cotizar", CheckoutSubmitHandler)

	r.Post("/idioma", LangToggleHandler)

	r.Get("/paginas/{slug}", ContentPageHandler)

	return r
}
