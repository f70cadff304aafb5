package eventbus

import (
	"log"
	"sync"

	"card-ranker/internal/models"
)

const (
	// EventCardsUpdated carries the two cards touched by a comparison.
	EventCardsUpdated = "cards_updated"
	// EventFavoriteToggled carries the single card whose flag flipped.
	EventFavoriteToggled = "favorite_toggled"
	// EventRatingsReset signals that all rating state was re-seeded.
	EventRatingsReset = "ratings_reset"
)

// Event is delivered to every subscriber after a store mutation.
type Event struct {
	Type  string        `json:"type"`
	Cards []models.Card `json:"cards,omitempty"`
}

// HandlerFunc delivers an event to a local subscriber.
type HandlerFunc func(Event)

// EventBus fans store mutation events out to subscribers on a dedicated
// goroutine, so publishers never block on slow consumers.
type EventBus struct {
	mu       sync.Mutex
	handlers []HandlerFunc
	events   chan Event
	done     chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func New() *EventBus {
	return &EventBus{
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
}

// Subscribe registers a handler. Must be called before Start.
func (eb *EventBus) Subscribe(h HandlerFunc) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers = append(eb.handlers, h)
}

// Start begins the dispatch loop in a background goroutine.
func (eb *EventBus) Start() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.running {
		return
	}
	eb.running = true
	eb.wg.Add(1)

	go eb.dispatchLoop()
	log.Println("[EventBus] Started")
}

// Stop drains the dispatch loop and waits for it to exit.
func (eb *EventBus) Stop() {
	eb.mu.Lock()
	if !eb.running {
		eb.mu.Unlock()
		return
	}
	eb.running = false
	eb.mu.Unlock()

	close(eb.done)
	eb.wg.Wait()
	log.Println("[EventBus] Stopped")
}

// Publish queues an event for delivery. Never blocks; if the buffer is full
// the event is dropped and logged (subscribers re-sync on their next read).
func (eb *EventBus) Publish(event Event) {
	select {
	case eb.events <- event:
	case <-eb.done:
	default:
		log.Printf("[EventBus] Buffer full, dropping %s event", event.Type)
	}
}

func (eb *EventBus) dispatchLoop() {
	defer eb.wg.Done()

	for {
		select {
		case event := <-eb.events:
			eb.mu.Lock()
			handlers := make([]HandlerFunc, len(eb.handlers))
			copy(handlers, eb.handlers)
			eb.mu.Unlock()

			for _, h := range handlers {
				h(event)
			}
		case <-eb.done:
			return
		}
	}
}
