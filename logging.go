package trex

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewLoggerTo(prefix, debug, os.Stdout, os.Stderr)
}

// NewLoggerTo writes debug and info lines to out, warnings and errors to errOut.
func NewLoggerTo(prefix string, debug bool, out, errOut io.Writer) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) line(level string, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if l.prefix == "" {
		return level + ": " + msg
	}
	return fmt.Sprintf("[%s] %s: %s", l.prefix, level, msg)
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.line("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.line("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.line("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.line("ERROR", format, args...))
}

const (
	DefaultLogPrefix  = "trex"
	DefaultStatsEvery = 600
)

// LoggingModule installs a default logger as a resource. With debug enabled it
// also logs a frame summary every StatsEvery committed frames.
type LoggingModule struct {
	Prefix     string
	Debug      bool
	StatsEvery uint64
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	prefix := m.Prefix
	if prefix == "" {
		prefix = DefaultLogPrefix
	}
	every := m.StatsEvery
	if every == 0 {
		every = DefaultStatsEvery
	}

	cmd.AddResources(NewDefaultLogger(prefix, m.Debug))
	app.UseSystem(
		System(func(cmd *Commands) { logFrameStats(cmd.app, every) }).
			InStage(Finale),
	)
}

// logFrameStats writes one debug line on every frame that is a multiple of
// every. Sessions without a clock log nothing.
func logFrameStats(app *App, every uint64) {
	logger := app.Logger()
	if !logger.DebugEnabled() {
		return
	}
	clock, ok := Resource[Time](app)
	if !ok || clock.Frames == 0 || clock.Frames%every != 0 {
		return
	}
	colliders, contacts := 0, 0
	if collisions, ok := Resource[Collisions](app); ok {
		colliders, contacts = collisions.Len(), collisions.Contacts()
	}
	logger.Debugf("frame %d: dt %.4fs, %.1f fps avg, %d colliders, %d contacts",
		clock.Frames, clock.Dt, clock.AverageFPS(), colliders, contacts)
}

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }

func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Never returns nil.
func (app *App) Logger() Logger {
	if app == nil || app.resources == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
