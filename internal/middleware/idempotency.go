package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	TTL     time.Duration // How long replayable results are kept (default 24h)
	Cleanup time.Duration // Sweep interval for expired results (default 1h)
}

// replayEntry is one recorded response, keyed by request fingerprint.
// While pending is true the response is still being produced and done is
// open; duplicates block on done instead of re-running the handler.
type replayEntry struct {
	status    int
	headers   http.Header
	body      []byte
	expiresAt time.Time
	pending   bool
	done      chan struct{}
}

// IdempotencyStore records responses to keyed mutating requests so that a
// retried booking or ticket submission replays the original outcome instead
// of creating a second record.
type IdempotencyStore struct {
	mu      sync.RWMutex
	results map[string]*replayEntry
	ttl     time.Duration
	stop    chan struct{}
}

// NewIdempotencyStore creates a store and starts its expiry sweeper.
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = time.Hour
	}

	s := &IdempotencyStore{
		results: make(map[string]*replayEntry),
		ttl:     cfg.TTL,
		stop:    make(chan struct{}),
	}
	go s.sweep(cfg.Cleanup)
	return s
}

// Stop terminates the expiry sweeper.
func (s *IdempotencyStore) Stop() {
	close(s.stop)
}

func (s *IdempotencyStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *IdempotencyStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.results {
		// In-flight entries are never evicted; their waiters hold the key.
		if !e.pending && e.expiresAt.Before(now) {
			delete(s.results, key)
		}
	}
}

// fingerprint derives the storage key. The caller identity and the full
// request shape are both hashed in, so the same Idempotency-Key sent with a
// different body or path is treated as a fresh request.
func fingerprint(caller, key, method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(caller))
	h.Write([]byte(key))
	h.Write([]byte(method))
	h.Write([]byte(path))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// recordingWriter tees the response so a copy can be stored for replay.
type recordingWriter struct {
	http.ResponseWriter
	status int
	copy   bytes.Buffer
}

func (w *recordingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.copy.Write(b)
	return w.ResponseWriter.Write(b)
}

// replay writes a previously recorded response, flagging it as such.
func replay(w http.ResponseWriter, e *replayEntry) {
	for k, vals := range e.headers {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(e.status)
	_, _ = w.Write(e.body)
}

// Idempotency returns middleware that replays recorded responses for POST
// and PATCH requests carrying an Idempotency-Key header. Requests without
// the header, and all other methods, pass through untouched.
func Idempotency(store *IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			caller := GetUserID(r.Context())
			if caller == "" {
				// Unauthenticated requests are keyed per remote address.
				caller = r.RemoteAddr
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			fp := fingerprint(caller, key, r.Method, r.URL.Path, body)

			store.mu.Lock()
			entry, seen := store.results[fp]
			if seen {
				if entry.pending {
					// The first attempt is still running; wait for its
					// outcome rather than executing the handler twice.
					store.mu.Unlock()
					<-entry.done

					store.mu.RLock()
					entry = store.results[fp]
					store.mu.RUnlock()

					if entry != nil && !entry.pending {
						replay(w, entry)
						return
					}
				} else if entry.expiresAt.After(time.Now()) {
					store.mu.Unlock()
					replay(w, entry)
					return
				}
			}

			// First sighting (or the stored result expired): run the
			// handler, recording the outcome for later duplicates.
			entry = &replayEntry{
				pending: true,
				done:    make(chan struct{}),
			}
			store.results[fp] = entry
			store.mu.Unlock()

			rec := &recordingWriter{
				ResponseWriter: w,
				status:         http.StatusOK,
			}
			next.ServeHTTP(rec, r)

			store.mu.Lock()
			entry.status = rec.status
			entry.headers = rec.Header().Clone()
			entry.body = rec.copy.Bytes()
			entry.expiresAt = time.Now().Add(store.ttl)
			entry.pending = false
			close(entry.done)
			store.mu.Unlock()
		})
	}
}
