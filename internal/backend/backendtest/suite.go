// Package backendtest holds behavior checks shared by every attempt backend.
package backendtest

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"quiz/internal/backend"
	"quiz/internal/testutil"
	"quiz/pkg/quiz"
)

// Factory builds a fresh, empty backend for one subtest.
type Factory func(t *testing.T) backend.Backend

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// Run exercises the Backend contract against backends produced by newBackend.
func Run(t *testing.T, newBackend Factory) {
	t.Run("GetUnknown", func(t *testing.T) { testGetUnknown(t, newBackend(t)) })
	t.Run("SaveGetRoundTrip", func(t *testing.T) { testSaveGetRoundTrip(t, newBackend(t)) })
	t.Run("SaveReplaces", func(t *testing.T) { testSaveReplaces(t, newBackend(t)) })
	t.Run("SaveKeepsDuplicates", func(t *testing.T) { testSaveKeepsDuplicates(t, newBackend(t)) })
	t.Run("FinishUnknown", func(t *testing.T) { testFinishUnknown(t, newBackend(t)) })
	t.Run("FinishMarksAttempt", func(t *testing.T) { testFinishMarksAttempt(t, newBackend(t)) })
	t.Run("FinishTwice", func(t *testing.T) { testFinishTwice(t, newBackend(t)) })
	t.Run("SaveAfterFinishReopens", func(t *testing.T) { testSaveAfterFinishReopens(t, newBackend(t)) })
	t.Run("Stats", func(t *testing.T) { testStats(t, newBackend(t)) })
	t.Run("ConcurrentSaves", func(t *testing.T) { testConcurrentSaves(t, newBackend(t)) })
}

func testGetUnknown(t *testing.T, b backend.Backend) {
	ctx := testutil.Context(t, 2*time.Second)
	_, ok, err := b.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected unknown attempt to be absent")
	}
}

func testSaveGetRoundTrip(t *testing.T, b backend.Backend) {
	ctx := testutil.Context(t, 2*time.Second)
	answers := []quiz.Answer{{QuestionID: 1, SelectedIndex: 3}, {QuestionID: 99, SelectedIndex: -4}}
	mustSave(t, b, quiz.Attempt{ID: "a1", Answers: answers, RemainingSec: -5, LastSaved: baseTime})

	got, ok, err := b.Get(ctx, "a1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got.Answers, answers) {
		t.Fatalf("unexpected answers: %+v", got.Answers)
	}
	if got.RemainingSec != -5 || got.Finished || got.FinishedAt != nil {
		t.Fatalf("unexpected attempt: %+v", got)
	}
	if !got.LastSaved.Equal(baseTime) {
		t.Fatalf("expected last saved %s, got %s", baseTime, got.LastSaved)
	}

	got.Answers[0].SelectedIndex = 0
	again, _, _ := b.Get(ctx, "a1")
	if again.Answers[0].SelectedIndex != 3 {
		t.Fatalf("stored answers were mutated through a returned copy")
	}
}

func testSaveReplaces(t *testing.T, b backend.Backend) {
	ctx := testutil.Context(t, 2*time.Second)
	mustSave(t, b, quiz.Attempt{ID: "a1", Answers: []quiz.Answer{{QuestionID: 1}, {QuestionID: 2}}, RemainingSec: 50, LastSaved: baseTime})
	mustSave(t, b, quiz.Attempt{ID: "a1", Answers: []quiz.Answer{{QuestionID: 3, SelectedIndex: 1}}, RemainingSec: 40, LastSaved: baseTime.Add(time.Second)})

	got, _, err := b.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := []quiz.Answer{{QuestionID: 3, SelectedIndex: 1}}
	if !reflect.DeepEqual(got.Answers, want) || got.RemainingSec != 40 {
		t.Fatalf("expected full replacement, got %+v", got)
	}

	mustSave(t, b, quiz.Attempt{ID: "a1", RemainingSec: 30, LastSaved: baseTime.Add(2 * time.Second)})
	got, _, _ = b.Get(ctx, "a1")
	if got.Answers == nil || len(got.Answers) != 0 {
		t.Fatalf("expected empty non-nil answers, got %#v", got.Answers)
	}
}

func testSaveKeepsDuplicates(t *testing.T, b backend.Backend) {
	ctx := testutil.Context(t, 2*time.Second)
	answers := []quiz.Answer{{QuestionID: 1, SelectedIndex: 0}, {QuestionID: 1, SelectedIndex: 3}}
	mustSave(t, b, quiz.Attempt{ID: "dup", Answers: answers, RemainingSec: 10, LastSaved: baseTime})
	got, _, _ := b.Get(ctx, "dup")
	if !reflect.DeepEqual(got.Answers, answers) {
		t.Fatalf("expected duplicates to be kept in order, got %+v", got.Answers)
	}
}

func testFinishUnknown(t *testing.T, b backend.Backend) {
	ctx := testutil.Context(t, 2*time.Second)
	_, ok, err := b.Finish(ctx, "ghost", baseTime)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if ok {
		t.Fatalf("expected unknown attempt to report absent")
	}
	if _, ok, _ := b.Get(ctx, "ghost"); ok {
		t.Fatalf("finish must not create an attempt")
	}
}

func testFinishMarksAttempt(t *testing.T, b backend.Backend) {
	ctx := testutil.Context(t, 2*time.Second)
	answers := []quiz.Answer{{QuestionID: 1, SelectedIndex: 3}}
	mustSave(t, b, quiz.Attempt{ID: "a1", Answers: answers, RemainingSec: 12, LastSaved: baseTime})

	finishedAt := baseTime.Add(time.Minute)
	before, ok, err := b.Finish(ctx, "a1", finishedAt)
	if err != nil || !ok {
		t.Fatalf("finish: ok=%v err=%v", ok, err)
	}
	if before.Finished || !reflect.DeepEqual(before.Answers, answers) {
		t.Fatalf("expected pre-finish snapshot, got %+v", before)
	}

	got, _, _ := b.Get(ctx, "a1")
	if !got.Finished {
		t.Fatalf("expected attempt to be finished")
	}
	if got.FinishedAt == nil || !got.FinishedAt.Equal(finishedAt) {
		t.Fatalf("expected finished at %s, got %v", finishedAt, got.FinishedAt)
	}
	if got.RemainingSec != 12 || !reflect.DeepEqual(got.Answers, answers) {
		t.Fatalf("finish must not touch progress, got %+v", got)
	}
}

func testFinishTwice(t *testing.T, b backend.Backend) {
	ctx := testutil.Context(t, 2*time.Second)
	mustSave(t, b, quiz.Attempt{ID: "a1", Answers: []quiz.Answer{{QuestionID: 2, SelectedIndex: 1}}, RemainingSec: 5, LastSaved: baseTime})
	if _, _, err := b.Finish(ctx, "a1", baseTime.Add(time.Second)); err != nil {
		t.Fatalf("first finish: %v", err)
	}
	second, ok, err := b.Finish(ctx, "a1", baseTime.Add(2*time.Second))
	if err != nil || !ok {
		t.Fatalf("second finish: ok=%v err=%v", ok, err)
	}
	if !second.Finished || len(second.Answers) != 1 {
		t.Fatalf("expected finished snapshot with answers, got %+v", second)
	}
}

func testSaveAfterFinishReopens(t *testing.T, b backend.Backend) {
	ctx := testutil.Context(t, 2*time.Second)
	mustSave(t, b, quiz.Attempt{ID: "a1", RemainingSec: 5, LastSaved: baseTime})
	if _, _, err := b.Finish(ctx, "a1", baseTime.Add(time.Second)); err != nil {
		t.Fatalf("finish: %v", err)
	}
	mustSave(t, b, quiz.Attempt{ID: "a1", Answers: []quiz.Answer{{QuestionID: 4, SelectedIndex: 1}}, RemainingSec: 3, LastSaved: baseTime.Add(2 * time.Second)})
	got, _, _ := b.Get(ctx, "a1")
	if got.Finished || got.FinishedAt != nil {
		t.Fatalf("expected save to reset finished state, got %+v", got)
	}
}

func testStats(t *testing.T, b backend.Backend) {
	reader, ok := b.(backend.StatsReader)
	if !ok {
		t.Skip("backend does not report stats")
	}
	ctx := testutil.Context(t, 2*time.Second)
	for i := 0; i < 3; i++ {
		mustSave(t, b, quiz.Attempt{ID: fmt.Sprintf("s%d", i), RemainingSec: 60, LastSaved: baseTime})
	}
	if _, _, err := b.Finish(ctx, "s1", baseTime); err != nil {
		t.Fatalf("finish: %v", err)
	}
	stats, err := reader.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := quiz.Stats{Attempts: 3, Finished: 1, InProgress: 2}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}
}

func testConcurrentSaves(t *testing.T, b backend.Backend) {
	testutil.RunWithTimeout(t, 5*time.Second, func() {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(worker int) {
				defer wg.Done()
				ctx := testutil.Context(t, 5*time.Second)
				for j := 0; j < 20; j++ {
					attempt := quiz.Attempt{
						ID:           "shared",
						Answers:      []quiz.Answer{{QuestionID: worker, SelectedIndex: j}},
						RemainingSec: j,
						LastSaved:    baseTime,
					}
					if err := b.Save(ctx, attempt); err != nil {
						t.Errorf("save: %v", err)
						return
					}
					if _, _, err := b.Get(ctx, "shared"); err != nil {
						t.Errorf("get: %v", err)
						return
					}
				}
			}(i)
		}
		wg.Wait()
	})
	ctx := testutil.Context(t, 2*time.Second)
	got, ok, err := b.Get(ctx, "shared")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(got.Answers) != 1 {
		t.Fatalf("expected one writer to win, got %+v", got.Answers)
	}
}

func mustSave(t *testing.T, b backend.Backend, attempt quiz.Attempt) {
	t.Helper()
	ctx := testutil.Context(t, 2*time.Second)
	if err := b.Save(ctx, attempt); err != nil {
		t.Fatalf("save %s: %v", attempt.ID, err)
	}
}
