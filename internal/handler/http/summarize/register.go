package summarize

import "net/http"

// Register mounts the summarize endpoint on mux. Middlewares wrap only this
// route, outermost first.
func Register(mux *http.ServeMux, svc Service, middlewares ...func(http.Handler) http.Handler) {
	var h http.Handler = Handler{Svc: svc}
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	mux.Handle("POST /api/summarize", h)
}
