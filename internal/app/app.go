package app

import (
	"context"
	"log"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cinetrove/core/internal/config"
	http_catalog "github.com/cinetrove/core/internal/delivery/http/catalog"
	http_init "github.com/cinetrove/core/internal/delivery/http/init"
	http_metrics "github.com/cinetrove/core/internal/delivery/http/metrics"
	http_profile "github.com/cinetrove/core/internal/delivery/http/profile"
	http_review "github.com/cinetrove/core/internal/delivery/http/review"
	ws_loading "github.com/cinetrove/core/internal/delivery/ws/loading"
	infra_cms "github.com/cinetrove/core/internal/infra/cms"
	infra_kv_bolt "github.com/cinetrove/core/internal/infra/kv/bolt"
	infra_kv_memory "github.com/cinetrove/core/internal/infra/kv/memory"
	infra_kv_postgres "github.com/cinetrove/core/internal/infra/kv/postgres"
	infra_kv_redis "github.com/cinetrove/core/internal/infra/kv/redis"
	infra_personalization "github.com/cinetrove/core/internal/infra/personalization"
	service_variant "github.com/cinetrove/core/internal/service/variant"
	usecase_catalog "github.com/cinetrove/core/internal/usecase/catalog"
	usecase_overlay "github.com/cinetrove/core/internal/usecase/overlay"
	"github.com/cinetrove/core/pkg/kit"
)

func Go(cfg *config.Config) {
	cmsClient := infra_cms.New(cfg.CMS)

	var resolver *service_variant.Resolver
	if cfg.Personalization.ProjectID != "" {
		engine := infra_personalization.New(cfg.Personalization)
		resolver = service_variant.New(engine)
		resolver.Evaluate(context.Background())
	} else {
		resolver = service_variant.New(nil)
	}

	overlayKV := newOverlayKV(cfg)
	overlayStore := usecase_overlay.New(overlayKV)

	registry := prometheus.NewRegistry()
	metrics := kit.NewCatalogMetrics(registry)

	hub := ws_loading.NewHub()
	go hub.Run()

	catalogStore := usecase_catalog.New(cmsClient, resolver,
		usecase_catalog.WithMetrics(metrics),
		usecase_catalog.WithNotifier(hub),
	)

	// The UI shows the loading screen off /stats and the websocket feed until
	// the first bulk load settles, so serving starts before the load finishes.
	go func() {
		if _, err := catalogStore.Initialize(context.Background()); err != nil {
			slog.Error("initial bulk load failed", slog.String("error", err.Error()))
		}
	}()

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_catalog.New(catalogStore, overlayStore))
	controllerPool.Add(http_review.New(overlayStore, http_review.WithPublisher(cmsClient)))
	controllerPool.Add(http_profile.New(resolver, catalogStore))
	controllerPool.Add(http_metrics.New(registry))
	controllerPool.Add(ws_loading.NewController(hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}

func newOverlayKV(cfg *config.Config) usecase_overlay.KV {
	switch cfg.Overlay.Backend {
	case "redis":
		client := infra_kv_redis.MustEstablishConn(cfg.Redis)
		return infra_kv_redis.New(client, "overlay")
	case "postgres":
		db := infra_kv_postgres.MustEstablishConn(cfg.Postgres)
		store := infra_kv_postgres.New(db)
		if err := store.EnsureSchema(); err != nil {
			log.Fatalf("failed to prepare overlay schema: %v", err)
		}
		return store
	case "memory":
		return infra_kv_memory.New()
	default:
		store, err := infra_kv_bolt.New(cfg.Overlay.BoltPath)
		if err != nil {
			log.Fatalf("failed to open overlay database: %v", err)
		}
		return store
	}
}
