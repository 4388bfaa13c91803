package hero

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"garagehub/pkg/models"
)

// DefaultInterval is the autoplay period.
const DefaultInterval = 5 * time.Second

type Options struct {
	Autoplay     bool
	Interval     time.Duration
	PauseOnHover bool
}

// ChangeFunc receives the new index and car after every transition. It runs
// on the goroutine that caused the transition and must not call Start, Stop,
// Hover, SetCompact or Rebuild.
type ChangeFunc func(index int, car models.Car)

// Carousel rotates through a fixed list of cars. Rotation is an explicit
// state machine: Start arms at most one timer goroutine, every other control
// call cancels it first and re-arms it when rotation is still wanted.
type Carousel struct {
	ctl sync.Mutex // serializes control calls
	mu  sync.Mutex // guards the fields below

	opts     Options
	items    []models.Car
	index    int
	wanted   bool
	hovered  bool
	compact  bool
	onChange ChangeFunc

	stop chan struct{}
	done chan struct{}
}

func NewCarousel(items []models.Car, opts Options) *Carousel {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Carousel{opts: opts, items: cloneCars(items)}
}

// OnChange installs the transition callback.
func (c *Carousel) OnChange(fn ChangeFunc) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Current returns the shown car. ok is false when the list is empty.
func (c *Carousel) Current() (index int, car models.Car, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return 0, models.Car{}, false
	}
	return c.index, c.items[c.index].Clone(), true
}

// Running reports whether the timer goroutine is armed.
func (c *Carousel) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

func (c *Carousel) Next() { c.move(func(i int) int { return i + 1 }) }

func (c *Carousel) Prev() { c.move(func(i int) int { return i - 1 }) }

// Show jumps to index i, wrapping out-of-range values.
func (c *Carousel) Show(i int) { c.move(func(int) int { return i }) }

func (c *Carousel) move(to func(int) int) {
	c.mu.Lock()
	n := len(c.items)
	if n == 0 {
		c.mu.Unlock()
		return
	}
	c.index = wrap(to(c.index), n)
	idx, car, fn := c.index, c.items[c.index].Clone(), c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(idx, car)
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Start cancels any running timer and arms a new one when autoplay applies.
// Calling it twice leaves one timer.
func (c *Carousel) Start() {
	c.control(func() { c.wanted = true })
}

// Stop cancels the timer and waits for its goroutine to exit.
func (c *Carousel) Stop() {
	c.control(func() { c.wanted = false })
}

// Hover pauses rotation while the pointer is over the hero. It has no effect
// unless PauseOnHover is set.
func (c *Carousel) Hover(over bool) {
	c.control(func() {
		if c.opts.PauseOnHover {
			c.hovered = over
		}
	})
}

// SetCompact switches small-viewport mode, where autoplay is off.
func (c *Carousel) SetCompact(compact bool) {
	c.control(func() { c.compact = compact })
}

// Rebuild swaps in a new list and shows its first car. The timer is
// cancelled before the swap so it never points into the old list.
func (c *Carousel) Rebuild(items []models.Car) {
	c.control(func() {
		c.items = cloneCars(items)
		c.index = 0
	})
}

func (c *Carousel) control(mutate func()) {
	c.ctl.Lock()
	defer c.ctl.Unlock()

	c.mu.Lock()
	done := c.stopLocked()
	c.mu.Unlock()
	if done != nil {
		<-done
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	mutate()
	if c.eligibleLocked() {
		c.stop = make(chan struct{})
		c.done = make(chan struct{})
		go c.loop(c.stop, c.done, c.opts.Interval)
	}
}

func (c *Carousel) eligibleLocked() bool {
	return c.wanted && c.opts.Autoplay && !c.hovered && !c.compact && len(c.items) >= 2
}

func (c *Carousel) stopLocked() chan struct{} {
	if c.stop == nil {
		return nil
	}
	close(c.stop)
	done := c.done
	c.stop, c.done = nil, nil
	return done
}

func (c *Carousel) loop(stop <-chan struct{}, done chan<- struct{}, interval time.Duration) {
	defer close(done)
	log.Debug().Str("component", "hero").Dur("interval", interval).Msg("rotation started")

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			log.Debug().Str("component", "hero").Msg("rotation stopped")
			return
		case <-t.C:
		}

		c.mu.Lock()
		select {
		case <-stop:
			c.mu.Unlock()
			return
		default:
		}
		c.index = wrap(c.index+1, len(c.items))
		idx, car, fn := c.index, c.items[c.index].Clone(), c.onChange
		c.mu.Unlock()

		if fn != nil {
			fn(idx, car)
		}
	}
}

func cloneCars(cars []models.Car) []models.Car {
	out := make([]models.Car, len(cars))
	for i, car := range cars {
		out[i] = car.Clone()
	}
	return out
}
