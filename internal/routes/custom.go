package routes

import "net/http"

// SampleCustom serves /sample/custom with the same contract as Hello. It
// is the starting point for a game's own nested routes.
func SampleCustom(deps Deps) Route {
	return Route{
		Path: "/sample/custom",
		Methods: map[string]HandlerFunc{
			http.MethodGet:  greet(deps),
			http.MethodPost: echo(),
		},
	}
}
