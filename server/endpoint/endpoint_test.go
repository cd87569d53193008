package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/nativebridge/component"
	apperrors "github.com/kbukum/nativebridge/errors"
	"github.com/kbukum/nativebridge/transcription"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeBridge struct {
	gotParams []any
	rows      []map[string]any
	err       error
}

func (f *fakeBridge) Load(_ context.Context, locator string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "/data/" + locator, nil
}

func (f *fakeBridge) Select(_ context.Context, _, _ string, params []any) ([]map[string]any, error) {
	f.gotParams = params
	return f.rows, f.err
}

func (f *fakeBridge) Execute(_ context.Context, _, _ string, params []any) error {
	f.gotParams = params
	return f.err
}

func (f *fakeBridge) Close(context.Context, string) error { return nil }

type fakeTranscriber struct {
	loaded string
	resp   *transcription.TranscriptionResponse
	err    error
	got    transcription.TranscriptionRequest
}

func (f *fakeTranscriber) Load(_ context.Context, path string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.loaded = path
	return "Whisper initialized.", nil
}

func (f *fakeTranscriber) Transcribe(_ context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	f.got = req
	return f.resp, f.err
}

func newRouter(bridge SQLBridge, svc Transcriber) *gin.Engine {
	r := gin.New()
	sh := NewSQLHandler(bridge)
	r.POST("/sql/load", sh.Load)
	r.POST("/sql/select", sh.Select)
	r.POST("/sql/execute", sh.Execute)
	r.POST("/sql/close", sh.Close)

	wh := NewWhisperHandler(svc)
	wh.verify = func(p string) error {
		if p == "bad" {
			return apperrors.InvalidArgument("model_path", "model file is too small")
		}
		return nil
	}
	r.POST("/whisper/init", wh.Init)
	r.POST("/whisper/transcribe", wh.Transcribe)
	r.POST("/whisper/verify", wh.Verify)
	return r
}

func post(t *testing.T, r http.Handler, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rr, req)

	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not valid JSON: %v (%s)", err, rr.Body.String())
	}
	return rr, out
}

func errorCode(out map[string]any) string {
	e, _ := out["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestSQLSelect_PreservesNumbers(t *testing.T) {
	bridge := &fakeBridge{rows: []map[string]any{{"id": int64(1), "data": []any{int64(7)}}}}
	r := newRouter(bridge, &fakeTranscriber{})

	rr, out := post(t, r, "/sql/select", `{"db":"sqlite:a.db","query":"SELECT ?","values":[18446744073709551615, 1.5, [1,2], null]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if n, ok := bridge.gotParams[0].(json.Number); !ok || n.String() != "18446744073709551615" {
		t.Errorf("expected json.Number to survive decoding, got %#v", bridge.gotParams[0])
	}
	if len(bridge.gotParams) != 4 || bridge.gotParams[3] != nil {
		t.Errorf("unexpected params %#v", bridge.gotParams)
	}
	rows, ok := out["data"].([]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("unexpected data %#v", out["data"])
	}
}

func TestSQLSelect_Validation(t *testing.T) {
	r := newRouter(&fakeBridge{}, &fakeTranscriber{})
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"malformed", `{"db":`},
		{"missing query", `{"db":"sqlite:a.db"}`},
		{"missing db", `{"query":"SELECT 1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, out := post(t, r, "/sql/select", tt.body)
			if rr.Code != http.StatusBadRequest || errorCode(out) != string(apperrors.ErrCodeInvalidArgument) {
				t.Errorf("expected 400 INVALID_ARGUMENT, got %d %v", rr.Code, out)
			}
		})
	}
}

func TestSQL_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"query", apperrors.Query("statement failed", nil), http.StatusUnprocessableEntity},
		{"range", apperrors.Range("numeric value exceeds supported range"), http.StatusBadRequest},
		{"resource", apperrors.ResourceUnavailable("no data dir", nil), http.StatusServiceUnavailable},
		{"io", apperrors.IO("cannot open", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&fakeBridge{err: tt.err}, &fakeTranscriber{})
			rr, out := post(t, r, "/sql/execute", `{"db":"x","query":"INSERT"}`)
			if rr.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, rr.Code)
			}
			if errorCode(out) != string(apperrors.CodeOf(tt.err)) {
				t.Errorf("unexpected error body %v", out)
			}
		})
	}
}

func TestSQLLoadAndClose(t *testing.T) {
	r := newRouter(&fakeBridge{}, &fakeTranscriber{})

	rr, out := post(t, r, "/sql/load", `{"path":"sqlite:notes.db"}`)
	if rr.Code != http.StatusOK || out["data"] != "/data/sqlite:notes.db" {
		t.Errorf("unexpected load response %d %v", rr.Code, out)
	}

	for _, body := range []string{`{"db":"sqlite:notes.db"}`, ``, `garbage`} {
		rr, out := post(t, r, "/sql/close", body)
		if rr.Code != http.StatusOK {
			t.Errorf("close with body %q: expected 200, got %d %v", body, rr.Code, out)
		}
	}
}

func TestWhisperInit(t *testing.T) {
	svc := &fakeTranscriber{}
	r := newRouter(&fakeBridge{}, svc)

	rr, out := post(t, r, "/whisper/init", `{"model_path":"/models/ggml-base.bin"}`)
	if rr.Code != http.StatusOK || out["data"] != "Whisper initialized." {
		t.Errorf("unexpected response %d %v", rr.Code, out)
	}
	if svc.loaded != "/models/ggml-base.bin" {
		t.Errorf("unexpected model path %q", svc.loaded)
	}

	failing := &fakeTranscriber{err: apperrors.EngineLoad(nil)}
	rr, out = post(t, newRouter(&fakeBridge{}, failing), "/whisper/init", `{"model_path":"x"}`)
	if rr.Code != http.StatusInternalServerError || errorCode(out) != string(apperrors.ErrCodeEngineLoad) {
		t.Errorf("expected ENGINE_LOAD_ERROR, got %d %v", rr.Code, out)
	}
}

func TestWhisperTranscribe(t *testing.T) {
	svc := &fakeTranscriber{resp: &transcription.TranscriptionResponse{
		Text:     "Hello world",
		Segments: []transcription.Segment{{Start: 0, End: 1, Text: "Hello world"}},
		Language: "en",
	}}
	r := newRouter(&fakeBridge{}, svc)

	rr, out := post(t, r, "/whisper/transcribe", `{"path":"/tmp/a.wav","lang":"English"}`)
	if rr.Code != http.StatusOK || out["data"] != "Hello world" {
		t.Errorf("unexpected response %d %v", rr.Code, out)
	}
	if svc.got.AudioPath != "/tmp/a.wav" || svc.got.Language != "English" {
		t.Errorf("unexpected request %+v", svc.got)
	}

	rr, out = post(t, r, "/whisper/transcribe", `{"path":"/tmp/a.wav","detailed":true}`)
	data, ok := out["data"].(map[string]any)
	if rr.Code != http.StatusOK || !ok || data["language"] != "en" {
		t.Errorf("unexpected detailed response %d %v", rr.Code, out)
	}
}

func TestWhisperTranscribe_NotInitialized(t *testing.T) {
	r := newRouter(&fakeBridge{}, &fakeTranscriber{err: apperrors.NotInitialized()})
	rr, out := post(t, r, "/whisper/transcribe", `{"path":"/tmp/a.wav"}`)
	if rr.Code != http.StatusConflict || errorCode(out) != string(apperrors.ErrCodeNotInitialized) {
		t.Errorf("expected 409 NOT_INITIALIZED, got %d %v", rr.Code, out)
	}
}

func TestWhisperVerify(t *testing.T) {
	r := newRouter(&fakeBridge{}, &fakeTranscriber{})
	if rr, _ := post(t, r, "/whisper/verify", `{"model_path":"good"}`); rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	rr, out := post(t, r, "/whisper/verify", `{"model_path":"bad"}`)
	if rr.Code != http.StatusBadRequest || errorCode(out) != string(apperrors.ErrCodeInvalidArgument) {
		t.Errorf("expected 400 INVALID_ARGUMENT, got %d %v", rr.Code, out)
	}
}

func TestHealthAndReadiness(t *testing.T) {
	tests := []struct {
		name       string
		components []component.Health
		health     string
		healthCode int
		readyCode  int
	}{
		{"all healthy", []component.Health{{Name: "a", Status: component.StatusHealthy}}, "healthy", 200, 200},
		{"degraded", []component.Health{{Name: "whisper", Status: component.StatusDegraded}}, "degraded", 200, 200},
		{"unhealthy", []component.Health{{Name: "sqlbridge", Status: component.StatusUnhealthy}}, "unhealthy", 503, 503},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := func(context.Context) []component.Health { return tt.components }
			r := gin.New()
			r.GET("/health", Health("nativebridge", checker))
			r.GET("/ready", Readiness("nativebridge", checker))

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
			var body map[string]any
			_ = json.Unmarshal(rr.Body.Bytes(), &body)
			if rr.Code != tt.healthCode || body["status"] != tt.health {
				t.Errorf("health: expected %d %s, got %d %v", tt.healthCode, tt.health, rr.Code, body)
			}

			rr = httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
			if rr.Code != tt.readyCode {
				t.Errorf("ready: expected %d, got %d", tt.readyCode, rr.Code)
			}
		})
	}
}

func TestVersionAndMetrics(t *testing.T) {
	r := gin.New()
	r.GET("/version", Version())
	r.GET("/metrics", Metrics())

	for _, path := range []string{"/version", "/metrics"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rr.Code)
		}
	}
}

func TestOverall_UnhealthyWinsOverDegraded(t *testing.T) {
	got := overall([]component.Health{
		{Name: "whisper", Status: component.StatusDegraded},
		{Name: "sqlbridge", Status: component.StatusUnhealthy},
	})
	if got != component.StatusUnhealthy {
		t.Errorf("expected unhealthy, got %s", got)
	}
	if overall(nil) != component.StatusHealthy {
		t.Error("expected healthy with no components")
	}
}
