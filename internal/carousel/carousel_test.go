package carousel

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEngine_SlideCount(t *testing.T) {
	tests := []struct {
		name          string
		itemCount     int
		itemsPerSlide int
		want          int
	}{
		{"exact multiple", 12, 4, 3},
		{"rounds up", 10, 4, 3},
		{"single item", 1, 4, 1},
		{"one per slide", 10, 1, 10},
		{"empty", 0, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.itemCount, tt.itemsPerSlide)
			assert.Equal(t, tt.want, e.SlideCount())
		})
	}
}

func TestEngine_Next_WrapsAround(t *testing.T) {
	e := New(12, 4) // 3 slides

	for range 3 {
		e.Next()
	}

	assert.Equal(t, 0, e.Index())
}

func TestEngine_Prev_WrapsFromZero(t *testing.T) {
	e := New(12, 4)

	e.Prev()

	assert.Equal(t, 2, e.Index())
}

func TestEngine_EmptyNeverAdvances(t *testing.T) {
	e := New(0, 4)

	assert.False(t, e.Next())
	assert.False(t, e.Prev())
	assert.False(t, e.TimerTick())
	assert.Equal(t, 0, e.Index())
}

func TestEngine_GoTo(t *testing.T) {
	e := New(12, 4)

	assert.True(t, e.GoTo(2))
	assert.Equal(t, 2, e.Index())

	// Out-of-range jumps are ignored.
	assert.False(t, e.GoTo(3))
	assert.False(t, e.GoTo(-1))
	assert.Equal(t, 2, e.Index())
}

func TestEngine_DragEnd_BelowThresholdSnapsBack(t *testing.T) {
	e := New(12, 4)

	e.DragStart(200)
	e.DragMove(160) // 40px left, under the threshold

	assert.False(t, e.DragEnd())
	assert.Equal(t, 0, e.Index())
}

func TestEngine_DragEnd_ExactThresholdSnapsBack(t *testing.T) {
	e := New(12, 4)

	e.DragStart(200)
	e.DragMove(150) // exactly 50px

	assert.False(t, e.DragEnd())
	assert.Equal(t, 0, e.Index())
}

func TestEngine_DragEnd_LeftAdvances(t *testing.T) {
	e := New(12, 4)

	e.DragStart(200)
	e.DragMove(140) // 60px left

	assert.True(t, e.DragEnd())
	assert.Equal(t, 1, e.Index())
}

func TestEngine_DragEnd_RightGoesBack(t *testing.T) {
	e := New(12, 4)
	e.GoTo(1)

	e.DragStart(100)
	e.DragMove(170) // 70px right

	assert.True(t, e.DragEnd())
	assert.Equal(t, 0, e.Index())
}

func TestEngine_DragEnd_WrapsLikeNavigation(t *testing.T) {
	e := New(12, 4)

	e.DragStart(300)
	e.DragMove(400) // right from slide 0 wraps to the last slide
	e.DragEnd()

	assert.Equal(t, 2, e.Index())
}

func TestEngine_TimerTick_IgnoredWhileDragging(t *testing.T) {
	e := New(12, 4)

	e.DragStart(100)

	assert.False(t, e.TimerTick())
	assert.Equal(t, 0, e.Index())
	assert.True(t, e.State().Dragging)
}

func TestEngine_DragMove_WithoutStartIgnored(t *testing.T) {
	e := New(12, 4)

	e.DragMove(500)

	assert.False(t, e.DragEnd())
	assert.Equal(t, 0, e.Index())
}

func TestEngine_SetViewport_RecomputesGeometry(t *testing.T) {
	e := New(10, 4) // 3 slides
	e.GoTo(2)

	e.SetViewport(500) // narrow: 1 per slide, 10 slides

	assert.Equal(t, 10, e.SlideCount())
	// Index 2 is still valid, so it is preserved.
	assert.Equal(t, 2, e.Index())
}

func TestEngine_SetViewport_ResetsOutOfRangeIndex(t *testing.T) {
	e := New(10, 1) // 10 slides
	e.GoTo(7)

	e.SetViewport(1024) // wide: 4 per slide, 3 slides

	assert.Equal(t, 3, e.SlideCount())
	assert.Equal(t, 0, e.Index())
}

func TestEngine_SetItems_ClampsIndex(t *testing.T) {
	e := New(12, 4)
	e.GoTo(2)

	e.SetItems(4) // now a single slide

	assert.Equal(t, 1, e.SlideCount())
	assert.Equal(t, 0, e.Index())
}

func TestItemsPerSlide(t *testing.T) {
	assert.Equal(t, 1, ItemsPerSlide(320))
	assert.Equal(t, 1, ItemsPerSlide(767))
	assert.Equal(t, 4, ItemsPerSlide(768))
	assert.Equal(t, 4, ItemsPerSlide(1920))
}

func TestAutoplay_AdvancesAndStops(t *testing.T) {
	var mu sync.Mutex
	e := New(12, 4)

	advanced := make(chan State, 16)
	tick := func(context.Context) (State, bool) {
		mu.Lock()
		defer mu.Unlock()
		moved := e.TimerTick()
		return e.State(), moved
	}
	advance := func(s State) { advanced <- s }

	a := NewAutoplay(10*time.Millisecond, tick, advance, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Start(ctx)
		close(done)
	}()

	select {
	case s := <-advanced:
		assert.Equal(t, 1, s.Index)
	case <-time.After(time.Second):
		t.Fatal("autoplay never advanced")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("autoplay did not stop on cancel")
	}
}
