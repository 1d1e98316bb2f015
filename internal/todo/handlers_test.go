package todo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Areg888/toolbox-app/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(newTestService(t, NewMemoryStore())))
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.ExecuteRequest(testutil.NewJSONRequest(method, path, body), h)
}

func TestTodoHandlersFlow(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/todos", `{"text":"water plants","priority":"high"}`)
	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	var created Todo
	testutil.DecodeJSONBody(t, w.Body, &created)
	if created.ID != "id-1" || created.Priority != PriorityHigh {
		t.Fatalf("unexpected created todo %+v", created)
	}

	do(t, router, http.MethodPost, "/todos", `{"text":"call mum"}`)

	w = do(t, router, http.MethodPost, "/todos/id-1/toggle", "")
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodPatch, "/todos/id-2", `{"text":"call dad"}`)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/todos?filter=active", "")
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var list ListResponse
	testutil.DecodeJSONBody(t, w.Body, &list)
	if len(list.Todos) != 1 || list.Todos[0].Text != "call dad" {
		t.Fatalf("unexpected active list %+v", list.Todos)
	}
	if list.Stats != (Stats{Total: 2, Active: 1, Completed: 1}) {
		t.Fatalf("unexpected stats %+v", list.Stats)
	}

	w = do(t, router, http.MethodDelete, "/todos/completed", "")
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var cleared map[string]int
	testutil.DecodeJSONBody(t, w.Body, &cleared)
	if cleared["removed"] != 1 {
		t.Fatalf("expected 1 removed, got %v", cleared)
	}

	w = do(t, router, http.MethodDelete, "/todos/id-2", "")
	testutil.CheckResponseCode(t, http.StatusNoContent, w.Code)

	w = do(t, router, http.MethodGet, "/todos/stats", "")
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var stats Stats
	testutil.DecodeJSONBody(t, w.Body, &stats)
	if stats != (Stats{}) {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
}

func TestTodoHandlersErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "bad json", method: http.MethodPost, path: "/todos", body: `{"text":`, want: http.StatusBadRequest},
		{name: "empty text", method: http.MethodPost, path: "/todos", body: `{"text":"  "}`, want: http.StatusUnprocessableEntity},
		{name: "bad priority", method: http.MethodPost, path: "/todos", body: `{"text":"x","priority":"urgent"}`, want: http.StatusUnprocessableEntity},
		{name: "bad filter", method: http.MethodGet, path: "/todos?filter=done", want: http.StatusBadRequest},
		{name: "toggle missing", method: http.MethodPost, path: "/todos/nope/toggle", want: http.StatusNotFound},
		{name: "delete missing", method: http.MethodDelete, path: "/todos/nope", want: http.StatusNotFound},
		{name: "edit missing", method: http.MethodPatch, path: "/todos/nope", body: `{"text":"x"}`, want: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, router, tc.method, tc.path, tc.body)
			testutil.CheckResponseCode(t, tc.want, w.Code)
			if tc.name == "bad json" {
				testutil.CheckErrorBody(t, w.Body, "invalid request body")
			}
		})
	}
}
