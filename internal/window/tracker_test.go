package window

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordCountsWithinWindow(t *testing.T) {
	assert := assert.New(t)

	tr := NewTracker()
	base := time.Unix(1000, 0)
	win := 10 * time.Second

	for i := 0; i < 4; i++ {
		count := tr.Record("g", "joins", base.Add(time.Duration(i)*time.Second), win)
		assert.Equal(i+1, count)
		assert.False(Exceeded(count, 4))
	}

	count := tr.Record("g", "joins", base.Add(4*time.Second), win)
	assert.Equal(5, count)
	assert.True(Exceeded(count, 4))
}

func TestWindowSlides(t *testing.T) {
	assert := assert.New(t)

	tr := NewTracker()
	base := time.Unix(1000, 0)
	win := 10 * time.Second

	for i := 0; i < 4; i++ {
		tr.Record("g", "joins", base, win)
	}

	// 11s later the first four are stale; only the new event counts.
	count := tr.Record("g", "joins", base.Add(11*time.Second), win)
	assert.Equal(1, count)
	assert.False(Exceeded(count, 4))
}

func TestEntryAtExactBoundaryIsRetained(t *testing.T) {
	tr := NewTracker()
	base := time.Unix(1000, 0)
	win := 10 * time.Second

	tr.Record("g", "s", base, win)
	count := tr.Record("g", "s", base.Add(10*time.Second), win)
	assert.Equal(t, 2, count)
}

func TestSubjectsAreIndependent(t *testing.T) {
	assert := assert.New(t)

	tr := NewTracker()
	now := time.Unix(1000, 0)
	win := 10 * time.Second

	assert.Equal(1, tr.Record("g", "u1", now, win))
	assert.Equal(1, tr.Record("g", "u2", now, win))
	assert.Equal(2, tr.Record("g", "u1", now, win))
	// Same subject name in another guild is a different window.
	assert.Equal(1, tr.Record("g2", "u1", now, win))
}

func TestResetGuild(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(1000, 0)
	win := 10 * time.Second

	tr.Record("g1", "u1", now, win)
	tr.Record("g2", "u1", now, win)
	tr.ResetGuild("g1")

	assert.Equal(t, 1, tr.Record("g1", "u1", now, win))
	assert.Equal(t, 2, tr.Record("g2", "u1", now, win))
}

func TestCompactionKeepsCountsCorrect(t *testing.T) {
	tr := NewTracker()
	base := time.Unix(1000, 0)
	win := time.Second

	// Long run where every event expires the previous one; the window must
	// keep returning 1 regardless of internal compaction.
	for i := 0; i < 1000; i++ {
		count := tr.Record("g", "s", base.Add(time.Duration(i)*2*time.Second), win)
		assert.Equal(t, 1, count)
	}
}

func TestConcurrentRecordsOneSubject(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(1000, 0)
	win := time.Minute

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				tr.Record("g", "flood", now, win)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker+1, tr.Record("g", "flood", now, win))
}
