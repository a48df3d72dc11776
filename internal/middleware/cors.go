package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors lets browser renderers served from another origin reach the
// bridge. In development every origin is allowed, otherwise only the
// listed ones.
func Cors(development bool, origins ...string) Middleware {
	options := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedHeaders: []string{"*"},
	}
	if development {
		options.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	return cors.New(options).Handler
}
