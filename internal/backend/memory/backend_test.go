package memory

import (
	"testing"
	"time"

	"quiz/internal/backend"
	"quiz/internal/backend/backendtest"
	"quiz/internal/testutil"
	"quiz/pkg/quiz"
)

func TestMemoryBackendContract(t *testing.T) {
	backendtest.Run(t, func(t *testing.T) backend.Backend {
		return New(nil)
	})
}

func TestMemorySaveStampsClockWhenUnset(t *testing.T) {
	clock := testutil.NewFakeClock(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	b := New(clock)
	ctx := testutil.Context(t, time.Second)
	if err := b.Save(ctx, quiz.Attempt{ID: "a"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _, _ := b.Get(ctx, "a")
	if !got.LastSaved.Equal(clock.Now()) {
		t.Fatalf("expected clock timestamp, got %s", got.LastSaved)
	}
}

func TestMemoryFinishUsesClockForZeroTime(t *testing.T) {
	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	b := New(ClockFunc(func() time.Time { return start }))
	ctx := testutil.Context(t, time.Second)
	if err := b.Save(ctx, quiz.Attempt{ID: "a"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, _, err := b.Finish(ctx, "a", time.Time{}); err != nil {
		t.Fatalf("finish: %v", err)
	}
	got, _, _ := b.Get(ctx, "a")
	if got.FinishedAt == nil || !got.FinishedAt.Equal(start) {
		t.Fatalf("expected finished at %s, got %v", start, got.FinishedAt)
	}
}

func TestMemorySaveCopiesInput(t *testing.T) {
	b := New(nil)
	ctx := testutil.Context(t, time.Second)
	answers := []quiz.Answer{{QuestionID: 1, SelectedIndex: 1}}
	if err := b.Save(ctx, quiz.Attempt{ID: "a", Answers: answers}); err != nil {
		t.Fatalf("save: %v", err)
	}
	answers[0].SelectedIndex = 2
	got, _, _ := b.Get(ctx, "a")
	if got.Answers[0].SelectedIndex != 1 {
		t.Fatalf("stored answers alias caller slice")
	}
}
