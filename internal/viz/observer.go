package viz

import (
	"fmt"
	"io"
	"math"
	"time"

	"golang.org/x/exp/constraints"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveObserver redraws the Ez profile to w while the engine runs, at most
// frameRate times a second. The last step is always drawn. frameRate <= 0
// draws every step.
type LiveObserver[T constraints.Float] struct {
	w         io.Writer
	interval  time.Duration
	lastFrame time.Time
	canvas    *Canvas
	buf       []float64
	peak      float64
	steps     int
	slabStart int
	slabWidth int
	frames    int
}

func NewLiveObserver[T constraints.Float](w io.Writer, frameRate, steps, slabStart, slabWidth int) *LiveObserver[T] {
	var interval time.Duration
	if frameRate > 0 {
		interval = time.Second / time.Duration(frameRate)
	}
	fmt.Fprint(w, hideCursor)
	return &LiveObserver[T]{
		w:         w,
		interval:  interval,
		canvas:    NewCanvas(canvasWidth/2, canvasHeight/2),
		steps:     steps,
		slabStart: slabStart,
		slabWidth: slabWidth,
	}
}

func (l *LiveObserver[T]) OnStep(q int, ez, hy []T) {
	if cap(l.buf) < len(ez) {
		l.buf = make([]float64, len(ez))
	}
	l.buf = l.buf[:len(ez)]
	for m, v := range ez {
		l.buf[m] = float64(v)
		l.peak = math.Max(l.peak, math.Abs(float64(v)))
	}

	if q != l.steps-1 && time.Since(l.lastFrame) < l.interval {
		return
	}
	l.lastFrame = time.Now()

	l.canvas.Clear()
	l.canvas.Profile(l.buf, l.peak)
	l.canvas.Slab(l.slabStart, l.slabWidth, len(ez))

	progress := 0.0
	if l.steps > 1 {
		progress = float64(q) / float64(l.steps-1)
	}
	fmt.Fprintf(l.w, "%s%s\n%s%s %d/%d\n", clearScreen,
		headerStyle().Render("Ez LIVE"),
		fieldStyle().Render(l.canvas.String()),
		ProgressBar(progress, 30), q, l.steps-1)
	l.frames++
}

// Frames reports how many frames were drawn.
func (l *LiveObserver[T]) Frames() int { return l.frames }

// Close restores the cursor.
func (l *LiveObserver[T]) Close() {
	fmt.Fprint(l.w, showCursor)
}
