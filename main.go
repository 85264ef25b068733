package main

import (
	"context"
	"os"
	"os/signal"

	_ "net/http/pprof"

	"github.com/buaazp/fasthttprouter"
	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"gopkg.in/yaml.v2"
)

type Config struct {
	ListenAddr  string         `yaml:"ListenAddr"`
	DBPath      string         `yaml:"DBPath"`
	CatalogPath string         `yaml:"CatalogPath"`
	DBOptions   pebble.Options `yaml:"DBOptions"`
}

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := Start(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

var store *Store
var catalog *Catalog

func Start(ctx context.Context) error {
	var cfg Config
	yd, err := os.ReadFile("config.yml")
	if err != nil {
		return err
	}
	err = yaml.Unmarshal(yd, &cfg)
	if err != nil {
		return err
	}
	db, err := pebble.Open(cfg.DBPath, &cfg.DBOptions)
	if err != nil {
		return err
	}
	catalog, err = OpenCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	defer catalog.Close()
	store = NewStore(db)
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		router := NewRouter()
		s := fasthttp.Server{
			Handler:                       router.Handler,
			Concurrency:                   100000,
			MaxConnsPerIP:                 100000,
			ReadBufferSize:                10000,
			WriteBufferSize:               10000,
			DisableHeaderNamesNormalizing: true,
			NoDefaultContentType:          true,
			NoDefaultDate:                 true,
			NoDefaultServerHeader:         true,
		}
		err := s.ListenAndServe(cfg.ListenAddr)
		if err != nil {
			logger.Fatal().Err(err).Msg("listen failed")
		}
	}()

	return store.FlushLoop(ctx)
}

func NewRouter() *fasthttprouter.Router {
	router := fasthttprouter.New()

	// one binary frame per request; response is a frame too
	router.POST("/wire", WireHandler)

	router.GET("/db/:acc/budget/:id", GetBudgetHandler)
	router.POST("/db/:acc/budget/:id", SetBudgetHandler)
	router.DELETE("/db/:acc/budget/:id", DeleteBudgetHandler)

	router.GET("/snapshots", ListSnapshotsHandler)

	router.NotFound = func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(404)
	}
	return router
}
