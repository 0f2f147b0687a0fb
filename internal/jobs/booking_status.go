package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/studiohub/api/internal/service"
)

// BookingStatusProcessor runs scheduled booking status transitions
// - Transitions bookings from planned -> active when start_time is reached
// - Transitions bookings from active -> completed when end_time is reached
// Cancelled bookings are skipped.
type BookingStatusProcessor struct {
	bookingService *service.BookingService
	interval       time.Duration
	stopCh         chan struct{}
	wg             sync.WaitGroup
	running        bool
	mu             sync.Mutex
}

// NewBookingStatusProcessor creates a new booking status processor job
func NewBookingStatusProcessor(bookingService *service.BookingService, interval time.Duration) *BookingStatusProcessor {
	if interval == 0 {
		interval = 1 * time.Minute // Default check every minute
	}
	return &BookingStatusProcessor{
		bookingService: bookingService,
		interval:       interval,
		stopCh:         make(chan struct{}),
	}
}

// Start begins the booking status processor job
func (p *BookingStatusProcessor) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run()
	log.Printf("Booking status processor started (interval: %v)", p.interval)
}

// Stop gracefully stops the booking status processor job
func (p *BookingStatusProcessor) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopCh)
	p.wg.Wait()
	log.Println("Booking status processor stopped")
}

// run is the main loop
func (p *BookingStatusProcessor) run() {
	defer p.wg.Done()

	// Run immediately on start (but with a short delay to let services initialize)
	time.Sleep(5 * time.Second)
	p.processBookingTransitions()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.processBookingTransitions()
		case <-p.stopCh:
			return
		}
	}
}

// processBookingTransitions processes all due booking status transitions
func (p *BookingStatusProcessor) processBookingTransitions() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := p.bookingService.ProcessScheduledTransitions(ctx); err != nil {
		log.Printf("Error processing booking transitions: %v", err)
	}
}

// RunOnce runs the booking processing once (for testing or manual trigger)
func (p *BookingStatusProcessor) RunOnce(ctx context.Context) error {
	return p.bookingService.ProcessScheduledTransitions(ctx)
}

// IsRunning returns whether the processor is running
func (p *BookingStatusProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
