package fluentexpr

import (
	"log"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// warnState is the only shared mutable state in the package: a
// process-wide set of warning keys that have already been emitted. It
// starts empty and only ever grows.
var warnState = struct {
	sync.Mutex
	logger logr.Logger
	seen   map[string]bool
}{
	logger: funcr.New(func(prefix, args string) {
		log.Println(prefix, args)
	}, funcr.Options{}).WithName("fluentexpr"),
	seen: map[string]bool{},
}

// SetLogger routes usage warnings to l. The default logger writes
// through the standard library's log package.
func SetLogger(l logr.Logger) {
	warnState.Lock()
	defer warnState.Unlock()
	warnState.logger = l
}

// warnOnce emits msg at most once per distinct key for the lifetime
// of the process.
func warnOnce(key, msg string, keysAndValues ...any) {
	warnState.Lock()
	if warnState.seen[key] {
		warnState.Unlock()
		return
	}
	warnState.seen[key] = true
	logger := warnState.logger
	warnState.Unlock()
	logger.Info(msg, keysAndValues...)
}
