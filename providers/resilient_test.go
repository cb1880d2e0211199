package providers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	adskip "github.com/heibot/adskip"
)

type mockProvider struct {
	name        string
	failUntil   int
	calls       int
	probeErr    error
	response    []byte
	lastRequest Request
	generateErr error
	mu          sync.Mutex
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Model() string { return m.name + "-v1" }

func (m *mockProvider) Generate(ctx context.Context, req Request) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastRequest = req
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	if m.calls <= m.failUntil {
		return nil, adskip.ErrTimeout
	}
	return m.response, nil
}

func (m *mockProvider) CheckConnectivity(ctx context.Context) error {
	return m.probeErr
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []APILogEntry
}

func (r *recordingLogger) Log(ctx context.Context, entry APILogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingLogger) LogAsync(ctx context.Context, entry APILogEntry) {
	r.Log(ctx, entry)
}

func TestResilientProvider_RetriesRetryableErrors(t *testing.T) {
	mock := &mockProvider{name: "deepseek", failUntil: 2, response: []byte(`{}`)}
	rp := NewResilientProvider(mock, ResilientConfig{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		EnableRetry:  true,
	})

	raw, err := rp.Generate(context.Background(), Request{User: "prompt"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if string(raw) != `{}` {
		t.Errorf("raw = %s", raw)
	}
	if mock.calls != 3 {
		t.Errorf("calls = %d, want 3", mock.calls)
	}
}

func TestResilientProvider_NonRetryableFailsFast(t *testing.T) {
	parseErr := adskip.NewParseError("deepseek", "not json", errors.New("bad"))
	mock := &mockProvider{name: "deepseek", generateErr: parseErr}
	rp := NewResilientProvider(mock, ResilientConfig{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		EnableRetry:  true,
	})

	_, err := rp.Generate(context.Background(), Request{User: "prompt"})
	if !adskip.IsParseError(err) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if mock.calls != 1 {
		t.Errorf("calls = %d, want 1", mock.calls)
	}
}

func TestResilientProvider_LogsOutcome(t *testing.T) {
	logger := &recordingLogger{}
	mock := &mockProvider{name: "gemini", response: []byte(`{"startTime":0,"endTime":0}`)}
	rp := NewResilientProvider(mock, ResilientConfig{
		Logger:        logger,
		EnableLogging: true,
	})

	if _, err := rp.Generate(context.Background(), Request{VideoID: "BV1xx", User: "p"}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	logger.mu.Lock()
	defer logger.mu.Unlock()
	if len(logger.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(logger.entries))
	}
	e := logger.entries[0]
	if e.Provider != "gemini" || e.Operation != "generate" || !e.Success {
		t.Errorf("entry = %+v", e)
	}
	if e.VideoID != "BV1xx" {
		t.Errorf("VideoID = %q", e.VideoID)
	}
	if e.Model != "gemini-v1" {
		t.Errorf("Model = %q, want gemini-v1", e.Model)
	}
	hash, ok := e.Extra["prompt_hash"].(string)
	if !ok || len(hash) != 12 {
		t.Errorf("Extra[prompt_hash] = %v, want 12-char hash", e.Extra["prompt_hash"])
	}
}

func TestResilientProvider_ConnectivityFailure(t *testing.T) {
	logger := &recordingLogger{}
	mock := &mockProvider{name: "deepseek", probeErr: adskip.ErrNetworkUnreachable}
	rp := NewResilientProvider(mock, ResilientConfig{
		Logger:        logger,
		EnableLogging: true,
	})

	if err := rp.CheckConnectivity(context.Background()); err == nil {
		t.Fatal("CheckConnectivity() = nil, want error")
	}

	logger.mu.Lock()
	defer logger.mu.Unlock()
	if len(logger.entries) != 1 || logger.entries[0].Success {
		t.Errorf("entries = %+v", logger.entries)
	}
}

func TestBuildUserPrompt(t *testing.T) {
	got := BuildUserPrompt("测试视频", "简介内容", "[0-60s]: 恰饭")
	want := "视频标题：测试视频\n视频简介：简介内容\n视频文本内容：\n[0-60s]: 恰饭"
	if got != want {
		t.Errorf("BuildUserPrompt() = %q, want %q", got, want)
	}

	bare := BuildUserPrompt("", "", "text")
	if bare != "视频文本内容：\ntext" {
		t.Errorf("bare prompt = %q", bare)
	}
}
