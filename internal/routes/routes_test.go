package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/okian/gamekit/internal/routes"
	. "github.com/smartystreets/goconvey/convey"
)

// roundTrip encodes a response body the way the transport does and
// decodes it back into a generic value.
func roundTrip(resp routes.Response) map[string]any {
	data, err := json.Marshal(resp.Body)
	So(err, ShouldBeNil)
	var out map[string]any
	So(json.Unmarshal(data, &out), ShouldBeNil)
	return out
}

func fixedClock(t time.Time) routes.Clock {
	return func() time.Time { return t }
}

func TestHandleGet(t *testing.T) {
	Convey("Given the hello route with a fixed clock", t, func() {
		at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		route := routes.Hello(routes.Deps{Clock: fixedClock(at)})
		get, ok := route.Handler(http.MethodGet)
		So(ok, ShouldBeTrue)

		Convey("When GET /hello is served", func() {
			resp := get(context.Background(), routes.Request{Method: http.MethodGet, Path: "/hello"})

			Convey("Then it returns the greeting and the clock time", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				body := roundTrip(resp)
				So(body["message"], ShouldEqual, "Hello from your game backend!")
				So(body["timestamp"], ShouldEqual, "2024-01-01T00:00:00.000Z")
				So(len(body), ShouldEqual, 2)
			})
		})

		Convey("When the clock is in another zone", func() {
			loc := time.FixedZone("UTC+2", 2*60*60)
			route := routes.Hello(routes.Deps{Clock: fixedClock(time.Date(2024, 6, 1, 14, 30, 15, 123456789, loc))})
			get, _ := route.Handler(http.MethodGet)
			body := roundTrip(get(context.Background(), routes.Request{}))

			Convey("Then the timestamp is rendered in UTC with milliseconds", func() {
				So(body["timestamp"], ShouldEqual, "2024-06-01T12:30:15.123Z")
			})
		})

		Convey("When called with different requests", func() {
			a := roundTrip(get(context.Background(), routes.Request{Method: http.MethodGet, Path: "/hello"}))
			b := roundTrip(get(context.Background(), routes.Request{Method: http.MethodGet, Path: "/other", Body: []byte(`{"x":1}`)}))

			Convey("Then the message does not depend on the input", func() {
				So(a["message"], ShouldEqual, b["message"])
			})
		})
	})

	Convey("Given routes without an injected clock", t, func() {
		get, _ := routes.SampleCustom(routes.Deps{}).Handler(http.MethodGet)

		Convey("When GET is served", func() {
			before := time.Now()
			body := roundTrip(get(context.Background(), routes.Request{Method: http.MethodGet}))

			Convey("Then the timestamp is ISO-8601 and close to now", func() {
				ts, err := time.Parse(time.RFC3339Nano, body["timestamp"].(string))
				So(err, ShouldBeNil)
				So(ts, ShouldHappenWithin, 5*time.Second, before)
			})
		})
	})
}

func TestHandlePost(t *testing.T) {
	Convey("Given the POST handlers of both sample routes", t, func() {
		for _, route := range routes.Default(routes.Deps{}) {
			post, ok := route.Handler(http.MethodPost)
			So(ok, ShouldBeTrue)

			Convey("When "+route.Path+" receives valid JSON values", func() {
				bodies := []string{
					`{"name": "Player"}`,
					`{"nested":{"list":[1,2.5,"three",null,true]}}`,
					`[1,2,3]`,
					`"just a string"`,
					`42`,
					`-0.5e3`,
					`true`,
					`null`,
					` {"padded": true} `,
				}

				Convey("Then each is echoed structurally with status 200", func() {
					for _, b := range bodies {
						resp := post(context.Background(), routes.Request{Method: http.MethodPost, Path: route.Path, Body: []byte(b)})
						So(resp.StatusCode, ShouldEqual, http.StatusOK)

						var want any
						So(json.Unmarshal([]byte(b), &want), ShouldBeNil)
						out := roundTrip(resp)
						So(out["message"], ShouldEqual, "Received your data!")
						So(out["received"], ShouldResemble, want)
					}
				})
			})

			Convey("When "+route.Path+" receives a malformed body", func() {
				bodies := [][]byte{
					nil,
					{},
					[]byte("not-json"),
					[]byte(`{"name":`),
					[]byte(`{'single': 1}`),
					[]byte(`[1,2,]`),
					[]byte(`{} {}`),
					[]byte(strings.Repeat("[", 10001) + strings.Repeat("]", 10001)),
				}

				Convey("Then each yields 400 with the fixed failure object", func() {
					for _, b := range bodies {
						resp := post(context.Background(), routes.Request{Method: http.MethodPost, Path: route.Path, Body: b})
						So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
						out := roundTrip(resp)
						So(out["success"], ShouldEqual, false)
						So(out["error"], ShouldEqual, "Invalid JSON body")
					}
				})
			})

			Convey("When "+route.Path+" receives strings needing escapes", func() {
				resp := post(context.Background(), routes.Request{
					Method: http.MethodPost,
					Path:   route.Path,
					Body:   []byte("{\"html\":\"<b>&</b>\",\"bad\":\"a\xffb\"}"),
				})
				data, err := json.Marshal(resp.Body)
				So(err, ShouldBeNil)

				Convey("Then the output is valid UTF-8 with HTML characters escaped", func() {
					So(resp.StatusCode, ShouldEqual, http.StatusOK)
					So(json.Valid(data), ShouldBeTrue)
					So(string(data), ShouldContainSubstring, `\u003cb\u003e\u0026\u003c/b\u003e`)

					out := roundTrip(resp)
					received := out["received"].(map[string]any)
					So(received["html"], ShouldEqual, "<b>&</b>")
					So(received["bad"], ShouldEqual, "a\uFFFDb")
				})
			})

			Convey("When "+route.Path+" receives nesting at the encoder's limit", func() {
				body := strings.Repeat("[", 10000) + strings.Repeat("]", 10000)
				resp := post(context.Background(), routes.Request{Method: http.MethodPost, Path: route.Path, Body: []byte(body)})

				Convey("Then it is still echoed", func() {
					So(resp.StatusCode, ShouldEqual, http.StatusOK)
					_, err := json.Marshal(resp.Body)
					So(err, ShouldBeNil)
				})
			})
		}
	})
}

func TestSpecExamples(t *testing.T) {
	Convey("Given the default routes", t, func() {
		at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		byPath := map[string]routes.Route{}
		for _, r := range routes.Default(routes.Deps{Clock: fixedClock(at)}) {
			byPath[r.Path] = r
		}
		So(byPath, ShouldContainKey, "/hello")
		So(byPath, ShouldContainKey, "/sample/custom")

		Convey("POST /hello with a player name echoes it", func() {
			post, _ := byPath["/hello"].Handler(http.MethodPost)
			resp := post(context.Background(), routes.Request{Method: http.MethodPost, Path: "/hello", Body: []byte(`{"name": "Player"}`)})
			data, err := json.Marshal(resp.Body)
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(string(data), ShouldEqual, `{"message":"Received your data!","received":{"name":"Player"}}`)
		})

		Convey("POST /sample/custom with not-json fails", func() {
			post, _ := byPath["/sample/custom"].Handler(http.MethodPost)
			resp := post(context.Background(), routes.Request{Method: http.MethodPost, Path: "/sample/custom", Body: []byte("not-json")})
			data, err := json.Marshal(resp.Body)
			So(err, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(string(data), ShouldEqual, `{"success":false,"error":"Invalid JSON body"}`)
		})
	})
}

func TestRoute(t *testing.T) {
	Convey("Given a route", t, func() {
		route := routes.Hello(routes.Deps{})

		Convey("Then only GET and POST are bound", func() {
			So(route.Allowed(), ShouldResemble, []string{"GET", "POST"})
			_, ok := route.Handler(http.MethodPut)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given the response helpers", t, func() {
		So(routes.OK("x"), ShouldResemble, routes.Response{StatusCode: http.StatusOK, Body: "x"})
		So(routes.MalformedBody().StatusCode, ShouldEqual, http.StatusBadRequest)
	})
}
