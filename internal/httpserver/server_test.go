package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	list := &words.List{
		Words:  []string{"apple", "grape", "brave", "crane", "slate"},
		Source: "test",
	}
	return New(store.NewMemoryStore(), list, config.DefaultConfig())
}

func do(t *testing.T, s *Server, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestHealthAndWords(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, out := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec, out = do(t, s, http.MethodGet, "/debug/words", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5.0, out["words"])
	assert.Equal(t, "test", out["source"])

	rec, out = do(t, s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", out["error"])
}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, out := do(t, s, http.MethodPost, "/evaluate", map[string]string{"secret": "robot", "guess": "BOOBY"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "YGY..", out["feedback"])
	assert.Equal(t, []any{"present", "correct", "present", "absent", "absent"}, out["marks"])
	assert.Equal(t, false, out["solved"])

	rec, _ = do(t, s, http.MethodPost, "/evaluate", map[string]string{"secret": "robot", "guess": "rob"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolveNext_Replay(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, out := do(t, s, http.MethodPost, "/solve/next", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "slate", out["guess"])
	assert.Equal(t, 0.0, out["round"])
	assert.Equal(t, 5.0, out["remaining"])

	history := []map[string]string{{"guess": "slate", "feedback": "..G.G"}}
	rec, out = do(t, s, http.MethodPost, "/solve/next", map[string]any{"history": history})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "brave", out["guess"])
	assert.Equal(t, 3.0, out["remaining"])
	assert.Equal(t, []any{"brave", "crane", "grape"}, out["candidates"])

	history = append(history, map[string]string{"guess": "brave", "feedback": ".GG.G"})
	rec, out = do(t, s, http.MethodPost, "/solve/next", map[string]any{"history": history})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "crane", out["guess"])
	assert.Equal(t, 2.0, out["round"])

	history = append(history, map[string]string{"guess": "crane", "feedback": "GGGGG"})
	rec, out = do(t, s, http.MethodPost, "/solve/next", map[string]any{"history": history})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["solved"])
	assert.NotContains(t, out, "guess")
}

func TestSolveNext_SolvedOffList(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	history := []map[string]string{{"guess": "crony", "feedback": "GGGGG"}}
	rec, out := do(t, s, http.MethodPost, "/solve/next", map[string]any{"history": history})
	require.Equal(t, http.StatusOK, rec.Code, out)
	assert.Equal(t, true, out["solved"])
	assert.Equal(t, 1.0, out["round"])
}

func TestSolveNext_Errors(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"bad feedback", map[string]any{"history": []map[string]string{{"guess": "slate", "feedback": "GGZ.."}}}, http.StatusBadRequest},
		{"bad guess", map[string]any{"history": []map[string]string{{"guess": "sl4te", "feedback": "....."}}}, http.StatusBadRequest},
		{"pool exhausted", map[string]any{"history": []map[string]string{{"guess": "slate", "feedback": "GGGG."}}}, http.StatusUnprocessableEntity},
		{"unknown scorer", map[string]any{"scorer": "dice"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := do(t, s, http.MethodPost, "/solve/next", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestBench_Lifecycle(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, out := do(t, s, http.MethodPost, "/bench/", map[string]any{"rounds": 0, "workers": 2, "guesser": "entropy"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	id, _ := out["id"].(string)
	require.NotEmpty(t, id)

	var job map[string]any
	require.Eventually(t, func() bool {
		rec, job = do(t, s, http.MethodGet, "/bench/"+id, nil)
		return rec.Code == http.StatusOK && job["status"] == string(store.JobDone)
	}, 5*time.Second, 10*time.Millisecond)

	report, ok := job["report"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5.0, report["played"])
	assert.Equal(t, 5.0, report["won"])
	assert.Equal(t, "entropy", report["guesser"])
}

func TestBench_Errors(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, _ := do(t, s, http.MethodPost, "/bench/", map[string]any{"guesser": "coinflip"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// An unbounded round count never reaches the background runner.
	rec, out := do(t, s, http.MethodPost, "/bench/", map[string]any{"rounds": 1099511627776000})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, out["error"], "rounds must not exceed")

	rec, out = do(t, s, http.MethodGet, "/bench/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", out["error"])
}
