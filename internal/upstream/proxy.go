package upstream

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/amezghal/careergate/pkg/logger"
)

// NewProxy returns a reverse proxy that forwards /api/** to the backend with
// the caller's bearer token attached. Portal pages call resources (jobs,
// applications, companies, interviews) through this proxy so the raw token
// never reaches page code.
func NewProxy(base *url.URL, tokenFor func(*http.Request) string) *httputil.ReverseProxy {
	log := logger.WithModule("proxy")

	return &httputil.ReverseProxy{
		Director: func(req *http.Request) {
			req.URL.Scheme = base.Scheme
			req.URL.Host = base.Host
			req.URL.Path = joinProxyPath(base.Path, req.URL.Path)
			req.Host = base.Host

			req.Header.Del("Cookie")
			if token := tokenFor(req); token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Warn("backend proxy failed",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"UPSTREAM_UNAVAILABLE","message":"The job portal backend is unreachable, please try again"}}`))
		},
	}
}

func joinProxyPath(basePath, requestPath string) string {
	trimmed := strings.TrimPrefix(requestPath, "/api")
	if trimmed == "" {
		trimmed = "/"
	}
	return strings.TrimSuffix(basePath, "/") + trimmed
}
