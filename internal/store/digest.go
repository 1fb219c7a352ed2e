package store

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"errkb/internal/domain"
)

// Digest fingerprints the content and order of st. Rebuilding from an
// unchanged document yields the same digest.
func Digest(st *domain.Store) string {
	h := xxhash.New()
	for _, r := range st.Records() {
		_, _ = h.WriteString(r.Code)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(r.Explanation)
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
