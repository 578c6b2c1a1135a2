package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/okian/gamekit/internal/config"
	"github.com/okian/gamekit/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewHandler(t *testing.T) {
	convey.Convey("Given a configuration loaded from the environment", t, func() {
		_ = os.Setenv("GAMEKIT_API_PREFIX", "/backend")
		_ = os.Setenv("GAME_ID", "game-42")
		_ = os.Setenv("PLAYCADEMY_BASE_URL", "https://hub.example.net")
		defer func() {
			_ = os.Unsetenv("GAMEKIT_API_PREFIX")
			_ = os.Unsetenv("GAME_ID")
			_ = os.Unsetenv("PLAYCADEMY_BASE_URL")
		}()

		ctx := context.Background()
		cfg, err := config.Load(ctx)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When the handler is built", func() {
			h, err := newHandler(ctx, cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then routes are served under the configured prefix", func() {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/backend/hello", strings.NewReader(`{"name":"Player"}`)))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				var body map[string]any
				convey.So(json.Unmarshal(w.Body.Bytes(), &body), convey.ShouldBeNil)
				convey.So(body["received"], convey.ShouldResemble, map[string]any{"name": "Player"})
			})

			convey.Convey("And docs and health are mounted", func() {
				for _, path := range []string{"/openapi.yaml", "/api-docs", "/healthz"} {
					w := httptest.NewRecorder()
					h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})

			convey.Convey("And metrics carry the game id", func() {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/backend/hello", http.NoBody))
				w = httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `game_id="game-42"`)
			})
		})
	})

	convey.Convey("Given a configuration without platform values", t, func() {
		cfg := config.New()

		convey.Convey("Then the handler still serves the sample routes", func() {
			h, err := newHandler(context.Background(), cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sample/custom", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		})
	})
}
