package testsupport

import (
	"testing"

	"segue/internal/config"
	"segue/internal/queue"
)

// NewStore opens a queue store against the test config's database path and
// closes it when the test ends.
func NewStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.OpenPath(cfg.Paths.QueueDB)
	if err != nil {
		t.Fatalf("open queue store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close queue store: %v", err)
		}
	})
	return store
}
