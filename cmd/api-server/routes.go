package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/HackhimTech/ticketapp/assets"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	mux.NotFound(app.notFound)
	mux.MethodNotAllowed(app.methodNotAllowed)

	mux.Use(app.traceID)
	mux.Use(app.logAccess)
	mux.Use(app.recoverPanic)

	mux.Use(app.CORS)

	// The API is a single action-based endpoint: ?action= selects the
	// operation and the method is checked per action.
	mux.HandleFunc("/api", app.handleAction)

	mux.Handle("/*", http.FileServer(http.FS(assets.Static())))

	app.logger.Debug("routes configured", "routes", chiRoutesToStrings(mux.Routes()))

	return mux
}

func chiRoutesToStrings(routes []chi.Route) []string {
	parsedRoutes := make([]string, 0, len(routes))
	for _, route := range routes {
		parsedRoutes = append(parsedRoutes, route.Pattern)
	}
	return parsedRoutes
}
