package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors lets browsers on the given origins call the API with the session
// cookie. No origins means any origin.
func Cors(origins ...string) Middleware {
	options := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}
	if len(origins) == 0 {
		options.AllowOriginFunc = func(string) bool { return true }
	}
	return cors.New(options).Handler
}
