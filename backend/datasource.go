package backend

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/seekchart/chart"
	"github.com/fsnotify/fsnotify"
)

// Mode describes where the samples of a Snapshot come from.
type Mode uint8

const (
	ModeNone Mode = iota
	// ModeReplaying reads a file and reloads it whenever it is written.
	ModeReplaying
	// ModeStreaming reads rows from a pipe as they arrive.
	ModeStreaming
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeReplaying:
		return "replaying"
	case ModeStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// Snapshot is the state of the current trace. Samples must not be
// modified by receivers.
type Snapshot struct {
	ID      string
	Name    string
	Mode    Mode
	Samples []chart.Sample
	// Skipped counts rows that failed to parse.
	Skipped int
	Err     error
}

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

type datasourceState struct {
	current Snapshot
	cancel  context.CancelFunc
	subs    map[chan Snapshot]struct{}
}

// Datasource loads one trace at a time and publishes its Snapshots to any
// number of subscribers. Loading a new trace stops the previous one.
type Datasource struct {
	appCtx context.Context
	state  RWBox[datasourceState]
	// RecordDir, when set, receives a CSV copy of every streamed trace.
	RecordDir string
	// PublishInterval bounds how often a streamed trace is republished.
	PublishInterval time.Duration
}

func NewDatasource(appCtx context.Context) *Datasource {
	return &Datasource{
		appCtx:          appCtx,
		PublishInterval: 100 * time.Millisecond,
	}
}

// Snapshots streams the current trace until ctx is done. The current
// snapshot is delivered immediately; a slow receiver only misses
// intermediate snapshots, never the latest one.
func (d *Datasource) Snapshots(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot, 1)
	d.state.Write(func(s *datasourceState) {
		if s.subs == nil {
			s.subs = make(map[chan Snapshot]struct{})
		}
		s.subs[out] = struct{}{}
		out <- s.current
	})
	go func() {
		<-ctx.Done()
		d.state.Write(func(s *datasourceState) {
			delete(s.subs, out)
			close(out)
		})
	}()
	return out
}

// Current returns the latest snapshot.
func (d *Datasource) Current() Snapshot {
	var snap Snapshot
	d.state.Read(func(s *datasourceState) {
		snap = s.current
	})
	return snap
}

func sendLatest(ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

// begin makes a new session current, stopping the previous one.
func (d *Datasource) begin(name string, mode Mode) (context.Context, string) {
	id := generateSessionID()
	ctx, cancel := context.WithCancel(d.appCtx)
	d.state.Write(func(s *datasourceState) {
		if s.cancel != nil {
			s.cancel()
		}
		s.cancel = cancel
		s.current = Snapshot{ID: id, Name: name, Mode: mode}
		for ch := range s.subs {
			sendLatest(ch, s.current)
		}
	})
	return ctx, id
}

// publish applies update to the current snapshot if session id is still
// current and delivers the result.
func (d *Datasource) publish(id string, update func(*Snapshot)) {
	d.state.Write(func(s *datasourceState) {
		if s.current.ID != id {
			return
		}
		update(&s.current)
		for ch := range s.subs {
			sendLatest(ch, s.current)
		}
	})
}

func (d *Datasource) fail(id string, err error) {
	d.publish(id, func(s *Snapshot) {
		s.Err = err
	})
}

// Close stops the current session.
func (d *Datasource) Close() {
	d.state.Write(func(s *datasourceState) {
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
	})
}

func generateSessionID() string {
	return strings.Replace(time.Now().UTC().Format("20060102150405.000000000"), ".", "", 1)
}

func sessionFileFor(sessionID string) string {
	return "seekchart-" + sessionID + ".csv"
}

// LoadFromFile asks the user for a trace and loads it.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) (string, error) {
	file, err := expl.ChooseFile(".csv")
	if err != nil {
		return "", err
	}
	if f, ok := file.(interface{ Name() string }); ok {
		path := f.Name()
		if err := file.Close(); err != nil {
			log.Printf("failed closing %q: %v", path, err)
		}
		return d.LoadFromPath(path), nil
	}
	return d.LoadFromStream("trace", file), nil
}

// LoadFromPath loads the trace at path and reloads it whenever the file is
// written.
func (d *Datasource) LoadFromPath(path string) string {
	ctx, id := d.begin(filepath.Base(path), ModeReplaying)
	go d.watchFile(ctx, id, path)
	return id
}

func (d *Datasource) watchFile(ctx context.Context, id, path string) {
	reload := func() {
		f, err := os.Open(path)
		if err != nil {
			d.fail(id, fmt.Errorf("failed opening trace: %w", err))
			return
		}
		defer f.Close()
		samples, skipped, err := ReadSamples(f)
		d.publish(id, func(s *Snapshot) {
			s.Samples = samples
			s.Skipped = skipped
			s.Err = err
		})
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		d.fail(id, fmt.Errorf("failed creating file watcher: %w", err))
		return
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		log.Printf("not watching %q for changes: %v", path, err)
	}
	reload()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher error on %q: %v", path, err)
		}
	}
}

// LoadFromStream reads a trace from source as rows arrive. source is
// closed when the session ends.
func (d *Datasource) LoadFromStream(name string, source io.ReadCloser) string {
	ctx, id := d.begin(name, ModeStreaming)
	go d.readStream(ctx, id, source)
	return id
}

// LaunchTrace starts the trace generator and streams its output.
func (d *Datasource) LaunchTrace() (string, error) {
	ctx, id := d.begin(traceExeName, ModeStreaming)
	output, err := launchTrace(ctx)
	if err != nil {
		d.fail(id, err)
		return id, err
	}
	go d.readStream(ctx, id, output)
	return id, nil
}

func (d *Datasource) readStream(ctx context.Context, id string, source io.ReadCloser) {
	go func() {
		<-ctx.Done()
		// Unblocks the reader below.
		source.Close()
	}()
	type row struct {
		sample  chart.Sample
		skipped int
	}
	rows := make(chan row, 1024)
	readErr := make(chan error, 1)
	sr := newSampleReader(newLineReader(source))
	go func() {
		defer close(rows)
		for {
			sample, err := sr.Next()
			if err != nil {
				if !errors.Is(err, io.EOF) && ctx.Err() == nil {
					readErr <- err
				}
				return
			}
			select {
			case rows <- row{sample: sample, skipped: sr.skipped}:
			case <-ctx.Done():
				return
			}
		}
	}()

	rec, err := d.newRecorder(id)
	if err != nil {
		log.Printf("not recording trace: %v", err)
	}
	defer rec.Close()

	interval := d.PublishInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var samples []chart.Sample
	skipped := 0
	dirty := false
	flush := func() {
		snap := slices.Clone(samples)
		d.publish(id, func(s *Snapshot) {
			s.Samples = snap
			s.Skipped = skipped
		})
		dirty = false
	}
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-rows:
			if !ok {
				flush()
				select {
				case err := <-readErr:
					d.fail(id, fmt.Errorf("failed reading trace: %w", err))
				default:
				}
				return
			}
			samples = append(samples, r.sample)
			skipped = r.skipped
			rec.Write(r.sample)
			dirty = true
		case <-ticker.C:
			if dirty {
				flush()
			}
		}
	}
}

// recorder writes a streamed trace to a session file. A nil recorder
// discards everything.
type recorder struct {
	file   *os.File
	buf    *bufio.Writer
	writer *csv.Writer
}

func (d *Datasource) newRecorder(id string) (*recorder, error) {
	if d.RecordDir == "" {
		return nil, nil
	}
	f, err := os.Create(filepath.Join(d.RecordDir, sessionFileFor(id)))
	if err != nil {
		return nil, fmt.Errorf("failed creating session file: %w", err)
	}
	buf := bufio.NewWriter(f)
	rec := &recorder{
		file:   f,
		buf:    buf,
		writer: csv.NewWriter(buf),
	}
	if err := rec.writer.Write([]string{"x", "y"}); err != nil {
		return nil, errors.Join(err, f.Close())
	}
	return rec, nil
}

func (r *recorder) Write(s chart.Sample) {
	if r == nil {
		return
	}
	if err := r.writer.Write([]string{
		strconv.FormatFloat(s.X, 'f', -1, 64),
		strconv.FormatFloat(s.Y, 'f', -1, 64),
	}); err != nil {
		log.Printf("failed recording sample: %v", err)
	}
}

func (r *recorder) Close() {
	if r == nil {
		return
	}
	r.writer.Flush()
	err := errors.Join(r.writer.Error(), r.buf.Flush(), r.file.Close())
	if err != nil {
		log.Printf("failed closing session file: %v", err)
	}
}

const traceExeName = "seekchart-trace"

// traceOutput is the trace generator's stdout. The process is reaped once
// its output is drained or closed.
type traceOutput struct {
	io.ReadCloser
	cmd    *exec.Cmd
	once   sync.Once
	exited chan struct{}
}

func (t *traceOutput) wait() {
	t.once.Do(func() {
		go func() {
			defer close(t.exited)
			if err := t.cmd.Wait(); err != nil {
				log.Printf("trace generator exited: %v", err)
			}
		}()
	})
}

func (t *traceOutput) Read(p []byte) (int, error) {
	n, err := t.ReadCloser.Read(p)
	if err != nil {
		t.wait()
	}
	return n, err
}

func (t *traceOutput) Close() error {
	err := t.ReadCloser.Close()
	t.wait()
	return err
}

func runTraceWithName(ctx context.Context, exeName string) (*traceOutput, error) {
	cmd := exec.CommandContext(ctx, exeName)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed acquiring stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &traceOutput{ReadCloser: out, cmd: cmd, exited: make(chan struct{})}, nil
}

func launchTrace(ctx context.Context) (io.ReadCloser, error) {
	execPath, err := os.Executable()
	if err == nil {
		traceExe := filepath.Join(filepath.Dir(execPath), traceExeName)
		if runtime.GOOS == "windows" {
			traceExe += ".exe"
		}
		log.Printf("Looking for %q", traceExe)
		output, err := runTraceWithName(ctx, traceExe)
		if err == nil {
			return output, nil
		}
	}

	log.Printf("Searching path for trace generator")
	traceExe, err := exec.LookPath(traceExeName)
	if err != nil {
		return nil, fmt.Errorf("unable to locate %q in $PATH: %w", traceExeName, err)
	}

	output, err := runTraceWithName(ctx, traceExe)
	if err != nil {
		return nil, fmt.Errorf("failed launching %q: %w", traceExe, err)
	}

	return output, nil
}
