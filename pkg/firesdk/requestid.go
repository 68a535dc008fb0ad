package firesdk

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// HeaderRequestID carries a ULID per outbound call so client logs can be
// matched against API logs.
const HeaderRequestID = "X-Request-ID"

var (
	requestIDOnce sync.Once
	requestIDMu   sync.Mutex
	requestIDSrc  *ulid.MonotonicEntropy
)

// newRequestID returns a lexicographically sortable request identifier.
func newRequestID() string {
	requestIDOnce.Do(func() {
		requestIDSrc = ulid.Monotonic(rand.Reader, 0)
	})

	requestIDMu.Lock()
	defer requestIDMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), requestIDSrc).String()
}
