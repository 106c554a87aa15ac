package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vk/nodeprovider/internal/ctxlog"
	"github.com/vk/nodeprovider/internal/registry"
	"github.com/vk/nodeprovider/internal/universe"
)

// shutdownTimeout bounds how long in-flight queries may take to finish.
const shutdownTimeout = 5 * time.Second

type definitionJSON struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Abstract bool     `json:"abstract,omitempty"`
	Menu     []string `json:"menu,omitempty"`
	Target   string   `json:"target,omitempty"`
	Doc      string   `json:"doc,omitempty"`
	Origin   string   `json:"origin,omitempty"`
}

func toJSON(d *universe.Definition) definitionJSON {
	out := definitionJSON{
		ID:       d.ID,
		Name:     d.Name,
		Abstract: d.Abstract,
		Menu:     d.Menu,
		Doc:      d.Doc,
		Origin:   d.Origin,
	}
	if d.Target != nil {
		out.Target = d.Target.ID
	}
	return out
}

func toJSONList(defs []*universe.Definition) []definitionJSON {
	out := make([]definitionJSON, 0, len(defs))
	for _, d := range defs {
		out = append(out, toJSON(d))
	}
	return out
}

type artifactJSON struct {
	Definition string `json:"definition"`
	Name       string `json:"name"`
	Path       string `json:"path"`
	MediaType  string `json:"media_type"`
}

type errorJSON struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// routes builds the query API served by Serve.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(a.logRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})
	r.Get("/nodes", func(w http.ResponseWriter, _ *http.Request) {
		a.writeJSON(w, http.StatusOK, toJSONList(a.registry.Nodes()))
	})
	r.Get("/views", func(w http.ResponseWriter, _ *http.Request) {
		a.writeJSON(w, http.StatusOK, toJSONList(a.registry.Views()))
	})
	r.Get("/menu", func(w http.ResponseWriter, _ *http.Request) {
		entries := a.registry.MenuEntries()
		out := make(map[string]string, len(entries))
		for path, d := range entries {
			out[path] = d.ID
		}
		a.writeJSON(w, http.StatusOK, out)
	})
	r.Get("/slots", func(w http.ResponseWriter, _ *http.Request) {
		types := a.registry.SlotTypes()
		out := make([]string, 0, len(types))
		for _, t := range types {
			out = append(out, t.String())
		}
		a.writeJSON(w, http.StatusOK, out)
	})
	r.Get("/check", a.handleCheck)
	r.Get("/view", a.handleView)
	r.Get("/source", a.handleSource)

	return r
}

type checkJSON struct {
	OK       bool     `json:"ok"`
	Problems []string `json:"problems,omitempty"`
}

func (a *App) handleCheck(w http.ResponseWriter, req *http.Request) {
	err := a.registry.Validate(ctxlog.WithLogger(req.Context(), a.logger))
	if err == nil {
		a.writeJSON(w, http.StatusOK, checkJSON{OK: true})
		return
	}
	var verr *registry.ValidationError
	if !errors.As(err, &verr) {
		a.writeJSON(w, http.StatusInternalServerError, errorJSON{Error: err.Error()})
		return
	}
	a.writeJSON(w, http.StatusOK, checkJSON{Problems: verr.Problems})
}

func (a *App) handleView(w http.ResponseWriter, req *http.Request) {
	node, ok := a.lookupParam(w, req, "node")
	if !ok {
		return
	}
	view, found := a.registry.ViewFor(node)
	if !found {
		a.writeJSON(w, http.StatusNotFound, errorJSON{Error: fmt.Sprintf("%s has no view", node.Name)})
		return
	}
	a.writeJSON(w, http.StatusOK, toJSON(view))
}

func (a *App) handleSource(w http.ResponseWriter, req *http.Request) {
	d, ok := a.lookupParam(w, req, "type")
	if !ok {
		return
	}
	src, found := a.registry.SourceForNode(d)
	if !found {
		src, found = a.registry.SourceForView(d)
	}
	if !found {
		a.writeJSON(w, http.StatusNotFound, errorJSON{Error: fmt.Sprintf("%s has no source artifact", d.Name)})
		return
	}
	a.writeJSON(w, http.StatusOK, artifactJSON{
		Definition: d.ID,
		Name:       src.Name,
		Path:       src.Path,
		MediaType:  src.MediaType(),
	})
}

func (a *App) lookupParam(w http.ResponseWriter, req *http.Request, param string) (*universe.Definition, bool) {
	name := req.URL.Query().Get(param)
	if name == "" {
		a.writeJSON(w, http.StatusBadRequest, errorJSON{Error: fmt.Sprintf("missing %q query parameter", param)})
		return nil, false
	}
	d, err := a.lookup(name)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			a.writeJSON(w, http.StatusNotFound, errorJSON{Error: nf.Error(), Suggestions: nf.Suggestions})
			return nil, false
		}
		a.writeJSON(w, http.StatusInternalServerError, errorJSON{Error: err.Error()})
		return nil, false
	}
	return d, true
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("Failed to write response", "error", err)
	}
}

func (a *App) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.logger.Debug("Query served.", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start))
	})
}

// Serve runs the query server until ctx is cancelled, then shuts it down
// gracefully.
func (a *App) Serve(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if a.config.Addr == "" {
		return errors.New("serve requires an address")
	}

	a.httpServer = &http.Server{
		Addr:              a.config.Addr,
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Query server starting", "address", a.config.Addr)
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("query server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("Shutting down query server...")
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Query server shutdown failed", "error", err)
		return err
	}
	logger.Debug("Query server shut down gracefully.")
	return nil
}
