package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRoutes(t *testing.T) {
	a, _ := newTestApp(t)
	h := a.routes()

	t.Run("health", func(t *testing.T) {
		rec := get(t, h, "/health")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK\n", rec.Body.String())
	})

	t.Run("nodes", func(t *testing.T) {
		rec := get(t, h, "/nodes")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var nodes []definitionJSON
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nodes))
		require.Len(t, nodes, 4)
		assert.Equal(t, "ColorNode", nodes[0].Name)
		assert.Equal(t, []string{"Math/Color"}, nodes[0].Menu)
		assert.Equal(t, "manifest.GradientNode", nodes[3].ID)
	})

	t.Run("views", func(t *testing.T) {
		var views []definitionJSON
		require.NoError(t, json.Unmarshal(get(t, h, "/views").Body.Bytes(), &views))
		require.Len(t, views, 2)
		assert.Equal(t, "manifest.GradientNode", views[1].Target)
	})

	t.Run("menu", func(t *testing.T) {
		var menu map[string]string
		require.NoError(t, json.Unmarshal(get(t, h, "/menu").Body.Bytes(), &menu))
		assert.Len(t, menu, 6)
		assert.Equal(t, "manifest.GradientNode", menu["Gradient/Linear"])
	})

	t.Run("slots", func(t *testing.T) {
		var slots []string
		require.NoError(t, json.Unmarshal(get(t, h, "/slots").Body.Bytes(), &slots))
		require.Len(t, slots, 7)
		assert.Equal(t, "float64", slots[0])
		assert.Equal(t, "cty.list(number)", slots[6])
	})

	t.Run("check", func(t *testing.T) {
		var check checkJSON
		require.NoError(t, json.Unmarshal(get(t, h, "/check").Body.Bytes(), &check))
		assert.True(t, check.OK)
		assert.Empty(t, check.Problems)
	})

	testCases := []struct {
		name       string
		target     string
		wantStatus int
		wantBody   string
	}{
		{"inherited view", "/view?node=ColorNode", http.StatusOK, `"name":"BaseNodeView"`},
		{"no view", "/view?node=Node", http.StatusNotFound, "Node has no view"},
		{"unknown node", "/view?node=ColorNod", http.StatusNotFound, `"suggestions":["ColorNode"`},
		{"missing parameter", "/view", http.StatusBadRequest, `missing \"node\" query parameter`},
		{"source", "/source?type=GradientNode", http.StatusOK, `"name":"GradientNode.hcl"`},
		{"no source", "/source?type=MultiplyNode", http.StatusNotFound, "MultiplyNode has no source artifact"},
		{"wrong method", "/nodes", http.StatusMethodNotAllowed, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if tc.wantStatus == http.StatusMethodNotAllowed {
				rec = httptest.NewRecorder()
				h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tc.target, nil))
			} else {
				rec = get(t, h, tc.target)
			}
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantBody)
		})
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	a, _ := newTestApp(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	a.config.Addr = l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + a.config.Addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestServe_RequiresAddress(t *testing.T) {
	a, _ := newTestApp(t)
	a.config.Addr = ""
	assert.Error(t, a.Serve(context.Background()))
}
