package xmlparts

import (
	"context"
	"errors"
	"testing"
)

var (
	errMockList = errors.New("mock list error")
	errMockAdd  = errors.New("mock add error")
)

// errorHost is a mock host whose every call fails.
type errorHost struct{}

func (errorHost) ListParts(_ context.Context, _ string) ([]Part, error) {
	return nil, errMockList
}

func (errorHost) AddPart(_ context.Context, _ string) error {
	return errMockAdd
}

func TestErrorPaths_Set(t *testing.T) {
	logger := &mockLogger{}
	s := New[string](
		WithHost[string](errorHost{}),
		WithLogger[string](logger))

	ctx := context.Background()
	err := s.Set(ctx, "key", map[string]any{"a": 1})
	if !errors.Is(err, ErrHost) {
		t.Errorf("expected ErrHost from Set, got %v", err)
	}
	if !logger.contains("ListParts") {
		t.Error("expected list failure to be logged")
	}
}

func TestErrorPaths_Add(t *testing.T) {
	logger := &mockLogger{}
	mock := &mockHost{
		addFunc: func(ctx context.Context, xml string) error {
			return errMockAdd
		},
	}
	s := New[string](
		WithHost[string](mock),
		WithLogger[string](logger))

	ctx := context.Background()
	err := s.Set(ctx, "key", map[string]any{"a": 1})
	if !errors.Is(err, errMockAdd) {
		t.Errorf("expected add error from Set, got %v", err)
	}
	if !logger.contains("add part failed") {
		t.Error("expected add failure to be logged")
	}
}

func TestErrorPaths_GetValue(t *testing.T) {
	logger := &mockLogger{}
	s := New[string](
		WithHost[string](errorHost{}),
		WithLogger[string](logger))

	ctx := context.Background()
	_, err := s.GetValue(ctx, "key")
	if !errors.Is(err, errMockList) {
		t.Errorf("expected list error from GetValue, got %v", err)
	}
	if !logger.contains("ListParts") {
		t.Error("expected list failure to be logged")
	}
}

func TestErrorPaths_GetValue_Read(t *testing.T) {
	logger := &mockLogger{}
	part := &mockPart{ns: "key", xmlErr: errors.New("mock read error")}
	mock := &mockHost{
		listFunc: func(ctx context.Context, namespace string) ([]Part, error) {
			return []Part{part}, nil
		},
	}
	s := New[string](
		WithHost[string](mock),
		WithLogger[string](logger))

	ctx := context.Background()
	_, err := s.GetValue(ctx, "key")
	if !errors.Is(err, ErrHost) {
		t.Errorf("expected ErrHost from GetValue, got %v", err)
	}
	if !logger.contains("read part failed") {
		t.Error("expected read failure to be logged")
	}
}

func TestErrorPaths_Remove(t *testing.T) {
	logger := &mockLogger{}
	s := New[string](
		WithHost[string](errorHost{}),
		WithLogger[string](logger))

	ctx := context.Background()
	err := s.Remove(ctx, "key")
	if !errors.Is(err, ErrHost) {
		t.Errorf("expected ErrHost from Remove, got %v", err)
	}
	if !logger.contains("ListParts") {
		t.Error("expected list failure to be logged")
	}
}

func TestErrorPaths_MultiplePartsLogged(t *testing.T) {
	logger := &mockLogger{}
	mock := &mockHost{
		listFunc: func(ctx context.Context, namespace string) ([]Part, error) {
			return []Part{&mockPart{ns: namespace}, &mockPart{ns: namespace}}, nil
		},
	}
	s := New[string](
		WithHost[string](mock),
		WithLogger[string](logger))

	_, err := s.GetPart(context.Background(), "key")
	if !errors.Is(err, ErrMultipleParts) {
		t.Errorf("expected ErrMultipleParts, got %v", err)
	}
	if !logger.contains("key") {
		t.Error("expected multiple-parts failure to be logged with the namespace")
	}
}

// TestLogfAllLevels tests all log levels to cover switch branches.
func TestLogfAllLevels(t *testing.T) {
	logger := &mockLogger{}
	s := New[string](
		WithLogger[string](logger),
		WithLogTag[string]("[TestTag]"))

	ctx := context.Background()

	impl, ok := s.(*store[string])
	if !ok {
		t.Fatal("expected *store")
	}

	impl.logf("info", ctx, "info message")
	impl.logf("warn", ctx, "warn message")
	impl.logf("error", ctx, "error message")
	impl.logf("debug", ctx, "debug message")

	messages := logger.getMessages()
	if len(messages) != 4 {
		t.Errorf("Expected 4 log messages, got %d", len(messages))
	}

	for _, level := range []string{"INFO", "WARN", "ERROR", "DEBUG"} {
		found := false
		for _, msg := range messages {
			if len(msg) >= len(level) && msg[:len(level)] == level {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected to find %s level message", level)
		}
	}

	if !logger.contains("[TestTag]") {
		t.Error("Expected log tag in messages")
	}
}

// TestNoOpLoggerMethods tests the noopLogger methods are callable.
func TestNoOpLoggerMethods(_ *testing.T) {
	logger := noopLogger{}
	ctx := context.Background()

	// These should not panic.
	logger.Info(ctx, "test")
	logger.Warn(ctx, "test")
	logger.Error(ctx, "test")
	logger.Debug(ctx, "test")
}
