package main

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/jeffturcotte/jest/framework/app"
	"github.com/jeffturcotte/jest/framework/config"
	"github.com/jeffturcotte/jest/framework/container"
	gohttp "github.com/jeffturcotte/jest/framework/http"
	"github.com/jeffturcotte/jest/framework/routing"
)

// WidgetStore is an in-memory store shared across requests.
type WidgetStore struct {
	nextID atomic.Int64
}

func (s *WidgetStore) Add() int64 { return s.nextID.Add(1) }

// WidgetService depends on the store and the app config.
type WidgetService struct {
	store *WidgetStore
	app   string
}

// NewWidgetService is the constructor Create resolves.
func NewWidgetService(store *WidgetStore, cfg *config.Config) *WidgetService {
	return &WidgetService{store: store, app: cfg.App.Name}
}

func (s *WidgetService) Make() string {
	return fmt.Sprintf("%s-widget-%d", s.app, s.store.Add())
}

func main() {
	application := app.New() // loads .env automatically

	// One store for the process; each WidgetService resolves it shared.
	err := application.Set(container.Key[*WidgetStore](), container.Share(func() *WidgetStore {
		return &WidgetStore{}
	}))
	if err != nil {
		panic(err)
	}
	if err := application.DefineType("WidgetService", NewWidgetService); err != nil {
		panic(err)
	}

	application.Boot()
	r := application.Router()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		gohttp.NewResponse(w).Success(map[string]any{"message": "jest is running"})
	})

	r.Prefix("/api/v1", func(api *routing.Router) {

		// POST /api/v1/widgets — a fresh service per request, built by the
		// container with its dependencies resolved.
		api.Post("/widgets", func(w http.ResponseWriter, req *http.Request) {
			res := gohttp.NewResponse(w)
			v, err := application.Create("WidgetService")
			if err != nil {
				res.ServerError(err.Error())
				return
			}
			res.Created(map[string]any{"widget": v.(*WidgetService).Make()})
		})

		// GET /api/v1/report — invoke a plain func with injected arguments.
		api.Get("/report", func(w http.ResponseWriter, req *http.Request) {
			res := gohttp.NewResponse(w)
			out, err := application.Invoke(func(store *WidgetStore, cfg *config.Config) map[string]any {
				return map[string]any{
					"app":     cfg.App.Name,
					"widgets": store.nextID.Load(),
				}
			})
			if err != nil {
				res.ServerError(err.Error())
				return
			}
			res.Success(out)
		})
	})

	application.Run()
}
