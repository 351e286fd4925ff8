package client

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Sternrassler/spotify-catalog-client/internal/testutil"
)

func TestExecute_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	mock := testutil.NewMockSpotify()
	defer mock.Close()
	mock.SetResponse(testutil.ArtistPath("abc"), testutil.NewOKResponse(testutil.ArtistJSON("abc", "The Killers", 80)))

	c := newTestClient(t, mock, func(cfg *Config) {
		cfg.Tracer = tp.Tracer("test")
	})

	ctx := context.Background()
	if _, err := c.Artist("abc").Execute(ctx); err != nil {
		t.Fatalf("first Execute failed: %v", err)
	}
	if _, err := c.Artist("abc").Execute(ctx); err != nil {
		t.Fatalf("second Execute failed: %v", err)
	}
	if _, err := c.Artist("").Execute(ctx); err == nil {
		t.Fatal("Execute with empty id should fail")
	}

	spans := recorder.Ended()
	if len(spans) != 3 {
		t.Fatalf("ended spans = %d, want 3", len(spans))
	}

	for _, span := range spans {
		if span.Name() != "Client.Execute" {
			t.Errorf("span name = %q, want Client.Execute", span.Name())
		}
	}

	if !hasAttribute(spans[1].Attributes(), attribute.Bool("spotify.cache_hit", true)) {
		t.Errorf("second span attributes = %v, want spotify.cache_hit=true", spans[1].Attributes())
	}
	if hasAttribute(spans[0].Attributes(), attribute.Bool("spotify.cache_hit", true)) {
		t.Error("first span should not be marked as a cache hit")
	}
	if got := spans[2].Status().Code; got != codes.Error {
		t.Errorf("failed span status = %v, want %v", got, codes.Error)
	}
}

func hasAttribute(attrs []attribute.KeyValue, want attribute.KeyValue) bool {
	for _, kv := range attrs {
		if kv == want {
			return true
		}
	}
	return false
}
