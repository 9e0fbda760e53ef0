package logx

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
	level            = hclog.Info
	root             = newLogger()
)

func newLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "cryptoprobe",
		Level:      level,
		JSONFormat: os.Getenv("CPROBE_JSON_LOG") == "1",
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn:     func() time.Time { return time.Now().UTC() },
	})
}

// SetLevel accepts debug, info, warn or error. Unknown values are ignored.
func SetLevel(l string) {
	lv := hclog.LevelFromString(strings.ToLower(l))
	if lv == hclog.NoLevel {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	level = lv
	root.SetLevel(lv)
}

// SetOutput redirects all subsequent log lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	root = newLogger()
}

// Named returns a sub-logger for library code that takes an hclog.Logger.
func Named(name string) hclog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return root.Named(name)
}

func logger() hclog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return root
}

func Debugf(f string, a ...any) { logger().Debug(fmt.Sprintf(f, a...)) }
func Infof(f string, a ...any)  { logger().Info(fmt.Sprintf(f, a...)) }
func Warnf(f string, a ...any)  { logger().Warn(fmt.Sprintf(f, a...)) }
func Errorf(f string, a ...any) { logger().Error(fmt.Sprintf(f, a...)) }

func Fatalf(f string, a ...any) { Errorf(f, a...); os.Exit(1) }

// SprintKV renders kv sorted by key.
func SprintKV(kv map[string]any) string {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(fmt.Sprintf("%s=%v", k, kv[k]))
	}
	return b.String()
}
