package services_test

import (
	"context"
	"testing"

	"pmvhaven/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithMethod(ctx, "sceneByFragment")
	ctx = services.WithStage(ctx, "search")
	ctx = services.WithRequestID(ctx, "req-123")

	if method, ok := services.MethodFromContext(ctx); !ok || method != "sceneByFragment" {
		t.Fatalf("unexpected method: %v %v", method, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "search" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestStageBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
	ctx = services.WithMethod(ctx, "")
	if _, ok := services.MethodFromContext(ctx); ok {
		t.Fatal("expected no method value")
	}
}
