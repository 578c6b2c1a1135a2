package routes

import "net/http"

// Hello serves /hello.
//
//	GET  -> {"message": "Hello from your game backend!", "timestamp": "..."}
//	POST -> {"message": "Received your data!", "received": <body>}
func Hello(deps Deps) Route {
	return Route{
		Path: "/hello",
		Methods: map[string]HandlerFunc{
			http.MethodGet:  greet(deps),
			http.MethodPost: echo(),
		},
	}
}
