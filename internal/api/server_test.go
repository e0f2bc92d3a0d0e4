// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/uninavi/uninavi/internal/chat"
	"github.com/uninavi/uninavi/internal/schedule"
	"github.com/uninavi/uninavi/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubEngine struct {
	records []types.UniversityRecord
	events  []types.ProgressEvent
}

func (e *stubEngine) Run(_ context.Context, _ types.SearchFilters, progress func(types.ProgressEvent), sink func(types.UniversityRecord)) []types.UniversityRecord {
	for _, ev := range e.events {
		if progress != nil {
			progress(ev)
		}
	}
	for _, rec := range e.records {
		if sink != nil {
			sink(rec)
		}
	}
	return e.records
}

type stubCounselor struct {
	reply     string
	deltas    []string
	streamErr error
}

func (s *stubCounselor) Reply(context.Context, string, []chat.Exchange) string { return s.reply }

func (s *stubCounselor) ReplyStream(_ context.Context, _ string, _ []chat.Exchange, fn func(string) error) error {
	if s.streamErr != nil {
		return s.streamErr
	}
	for _, d := range s.deltas {
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}

func newTestServer(t *testing.T, engine SearchEngine, counselor Counselor) *Server {
	t.Helper()
	store, err := schedule.NewStore(types.ScheduleConfig{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if engine == nil {
		engine = &stubEngine{}
	}
	if counselor == nil {
		counselor = &stubCounselor{}
	}
	return NewServer(engine, counselor, store, types.ServerConfig{}, io.Discard)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// sseFrame is one decoded server-sent event.
type sseFrame struct {
	Event string
	Data  map[string]any
}

func parseSSE(t *testing.T, body string) []sseFrame {
	t.Helper()
	var frames []sseFrame
	var current sseFrame
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.Event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data := strings.TrimPrefix(line, "data: ")
			if err := json.Unmarshal([]byte(data), &current.Data); err != nil {
				t.Fatalf("bad SSE data %q: %v", data, err)
			}
		case line == "":
			if current.Event != "" {
				frames = append(frames, current)
				current = sseFrame{}
			}
		}
	}
	return frames
}

func TestRootAndHealth(t *testing.T) {
	router := newTestServer(t, nil, nil).Router()

	w := doJSON(t, router, http.MethodGet, "/", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "UniNavi") {
		t.Errorf("root: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestSearch(t *testing.T) {
	engine := &stubEngine{records: []types.UniversityRecord{
		{ID: "1", Name: "東京大学", Faculty: "工学部"},
	}}
	router := newTestServer(t, engine, nil).Router()

	w := doJSON(t, router, http.MethodPost, "/api/search", `{"region": "関東"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp searchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 1 || resp.Universities[0].Name != "東京大学" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestSearchRejectsBadJSON(t *testing.T) {
	router := newTestServer(t, nil, nil).Router()
	w := doJSON(t, router, http.MethodPost, "/api/search", `{"region":`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestSearchStream(t *testing.T) {
	engine := &stubEngine{
		events: []types.ProgressEvent{
			{Stage: types.StageModelSelected, Detail: map[string]any{"model": "m"}},
			{Stage: types.StageCompleted, Detail: map[string]any{"count": 2}},
		},
		records: []types.UniversityRecord{
			{ID: "1", Name: "東京大学"},
			{ID: "2", Name: "京都大学"},
		},
	}
	router := newTestServer(t, engine, nil).Router()

	w := doJSON(t, router, http.MethodPost, "/api/search/stream", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("content type = %q", ct)
	}
	if !w.Flushed {
		t.Error("stream frames were not flushed")
	}

	frames := parseSSE(t, w.Body.String())
	if len(frames) != 5 {
		t.Fatalf("got %d frames: %+v", len(frames), frames)
	}
	if frames[0].Event != "progress" || frames[0].Data["stage"] != types.StageModelSelected || frames[0].Data["model"] != "m" {
		t.Errorf("frames[0] = %+v", frames[0])
	}
	if frames[2].Event != "result" || frames[2].Data["index"] != float64(1) || frames[2].Data["total"] != float64(2) {
		t.Errorf("frames[2] = %+v", frames[2])
	}
	uni, ok := frames[2].Data["university"].(map[string]any)
	if !ok || uni["name"] != "東京大学" {
		t.Errorf("result university = %v", frames[2].Data["university"])
	}
	last := frames[len(frames)-1]
	if last.Event != "complete" || last.Data["total"] != float64(2) {
		t.Errorf("last frame = %+v", last)
	}
}

func TestChat(t *testing.T) {
	router := newTestServer(t, nil, &stubCounselor{reply: "工学部がおすすめです"}).Router()

	w := doJSON(t, router, http.MethodPost, "/api/chat", `{"message": "おすすめは？", "history": []}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp chatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Message != "工学部がおすすめです" {
		t.Errorf("message = %q", resp.Message)
	}

	w = doJSON(t, router, http.MethodPost, "/api/chat", `{"history": []}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing message status = %d", w.Code)
	}
}

func TestChatStream(t *testing.T) {
	router := newTestServer(t, nil, &stubCounselor{deltas: []string{"進路", "相談"}}).Router()

	w := doJSON(t, router, http.MethodPost, "/api/chat/stream", `{"message": "q"}`)
	frames := parseSSE(t, w.Body.String())
	if len(frames) != 3 {
		t.Fatalf("got %d frames: %+v", len(frames), frames)
	}
	if frames[0].Event != "delta" || frames[0].Data["content"] != "進路" {
		t.Errorf("frames[0] = %+v", frames[0])
	}
	if frames[2].Event != "complete" {
		t.Errorf("frames[2] = %+v", frames[2])
	}
}

func TestChatStreamError(t *testing.T) {
	router := newTestServer(t, nil, &stubCounselor{streamErr: errors.New("gateway down")}).Router()

	w := doJSON(t, router, http.MethodPost, "/api/chat/stream", `{"message": "q"}`)
	frames := parseSSE(t, w.Body.String())
	if len(frames) != 1 || frames[0].Event != "error" {
		t.Fatalf("frames = %+v", frames)
	}
	if !strings.Contains(frames[0].Data["message"].(string), "gateway down") {
		t.Errorf("error frame = %+v", frames[0])
	}
}

func TestScheduleCRUDOverHTTP(t *testing.T) {
	router := newTestServer(t, nil, nil).Router()

	body := `{"title": "東京大学 入試試験", "date": "2025-02-25T00:00:00Z", "type": "exam"}`
	w := doJSON(t, router, http.MethodPost, "/api/schedules", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body = %s", w.Code, w.Body.String())
	}
	var created schedule.Event
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding created: %v", err)
	}

	w = doJSON(t, router, http.MethodGet, "/api/schedules/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/schedules?type=exam", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), created.ID) {
		t.Errorf("list: %d %s", w.Code, w.Body.String())
	}

	update := `{"title": "変更", "date": "2025-02-26T00:00:00Z", "type": "exam"}`
	w = doJSON(t, router, http.MethodPut, "/api/schedules/"+created.ID, update)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "変更") {
		t.Errorf("update: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/schedules/stats", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"totalEvents":1`) {
		t.Errorf("stats: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodDelete, "/api/schedules/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Errorf("delete status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/schedules/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", w.Code)
	}
}

func TestScheduleImport(t *testing.T) {
	router := newTestServer(t, nil, nil).Router()

	rec := types.UniversityRecord{
		ID: "1", Name: "東京大学", Faculty: "工学部",
		ExamDate: "2025年2月25日", ApplicationDeadline: "2025年1月15日",
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(rec); err != nil {
		t.Fatal(err)
	}
	w := doJSON(t, router, http.MethodPost, "/api/schedules/import", buf.String())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"count":2`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestCORS(t *testing.T) {
	router := newTestServer(t, nil, nil).Router()

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"http://localhost:3000", true},
		{"https://uninavi.vercel.app", true},
		{"https://evil.example.com", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", tt.origin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		got := w.Header().Get("Access-Control-Allow-Origin")
		if tt.allowed && got != tt.origin {
			t.Errorf("origin %s: allow header = %q", tt.origin, got)
		}
		if !tt.allowed && got != "" {
			t.Errorf("origin %s unexpectedly allowed", tt.origin)
		}
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", w.Code)
	}
}
