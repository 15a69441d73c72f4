package middleware

import (
	"context"
	"net/http"

	"github.com/mssola/useragent"
)

type botKey struct{}

// BotDetector marks requests coming from crawlers so the consent flow can
// skip banner presentation for them. Crawlers never click accept, and counting
// them as banner impressions poisons the metrics.
func BotDetector(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uaHeader := r.Header.Get("User-Agent")
		isBot := false
		if uaHeader != "" {
			ua := useragent.New(uaHeader)
			isBot = ua.Bot()
		}
		ctx := context.WithValue(r.Context(), botKey{}, isBot)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsBot reports whether the request was identified as a crawler.
func IsBot(ctx context.Context) bool {
	if v, ok := ctx.Value(botKey{}).(bool); ok {
		return v
	}
	return false
}
