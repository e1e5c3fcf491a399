package handler

import (
	"context"
	"net/http"
	"sync"

	"membership-backend/bootstrap"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	rt      *bootstrap.Runtime
	initErr error
)

// Handler is the serverless entry point. All requests are rewritten here;
// the app is built on the first request and reused while the instance is warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		rt, initErr = bootstrap.New(context.Background())
		if initErr != nil {
			log.Error().Err(initErr).Msg("app create")
		}
	})
	if initErr != nil {
		http.Error(w, `{"error":"Service unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	r.RequestURI = r.URL.String()
	adaptor.FiberApp(rt.App)(w, r)
}
