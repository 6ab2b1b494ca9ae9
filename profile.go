// ABOUTME: CPU and heap profiling for the --cpuprofile and --memprofile flags
// ABOUTME: Profiles are written around a single command run

package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
)

// profiler owns the profile files requested on the command line
type profiler struct {
	cpuFile *os.File
	memPath string
}

// startProfiling begins CPU profiling into cpuPath and remembers memPath
// for the heap profile written by stop. Empty paths disable either profile.
func startProfiling(cpuPath, memPath string) (*profiler, error) {
	p := &profiler{memPath: memPath}

	if cpuPath == "" {
		return p, nil
	}

	f, err := os.Create(cpuPath)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}

	p.cpuFile = f

	return p, nil
}

// stop finishes the CPU profile and writes the heap profile
func (p *profiler) stop() {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		if err := p.cpuFile.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}

		p.cpuFile = nil
	}

	if p.memPath == "" {
		return
	}

	f, err := os.Create(p.memPath)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)

		return
	}

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}

	if err := f.Close(); err != nil {
		log.Printf("Warning: failed to close memory profile: %v", err)
	}
}
