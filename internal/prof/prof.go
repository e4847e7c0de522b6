// Package prof collects CPU, heap and execution-trace profiles for one
// CLI run. A Session owns every output file it opened, so the caller
// only has to remember a single Stop.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Options names the profile outputs to collect. An empty path skips
// that collector.
type Options struct {
	CPUPath   string
	MemPath   string
	TracePath string
}

// Session is a set of running collectors. The zero value is inert and
// Stop on a nil Session is a no-op.
type Session struct {
	cpu     *os.File
	trace   *os.File
	memPath string
	done    bool
}

// Start enables the requested collectors. On any failure the collectors
// already running are shut down before the error is returned.
func Start(opts Options) (*Session, error) {
	s := &Session{memPath: opts.MemPath}

	if opts.CPUPath != "" {
		f, err := os.Create(opts.CPUPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create the CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to start the CPU profile: %w", err)
		}
		s.cpu = f
	}

	if opts.TracePath != "" {
		f, err := os.Create(opts.TracePath)
		if err != nil {
			s.shutdownCPU()
			return nil, fmt.Errorf("failed to create the execution trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.shutdownCPU()
			return nil, fmt.Errorf("failed to start the execution trace: %w", err)
		}
		s.trace = f
	}

	return s, nil
}

// Stop shuts the collectors down in the reverse of their start order and
// writes the heap snapshot last, after a forced GC. Calling Stop more
// than once is safe; only the first call does anything.
func (s *Session) Stop() error {
	if s == nil || s.done {
		return nil
	}
	s.done = true

	var firstErr error
	if s.trace != nil {
		trace.Stop()
		if err := s.trace.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.trace = nil
	}
	if err := s.shutdownCPU(); err != nil && firstErr == nil {
		firstErr = err
	}
	if s.memPath != "" {
		if err := writeHeapProfile(s.memPath); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Session) shutdownCPU() error {
	if s.cpu == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := s.cpu.Close()
	s.cpu = nil
	return err
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create the heap profile: %w", err)
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
