// Package sampler turns real OS processes (or a seeded random generator)
// into simulator inputs. Live sampling reads the Linux /proc tree and maps
// each process's niceness onto the simulator's priority scale; burst and
// arrival times are synthesized, since real CPU demand is unknowable up
// front. With a fixed seed the mapping is fully deterministic.
package sampler

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/me/schedsim/pkg/sched"
)

// Options configures a live sample.
type Options struct {
	Count    int    // maximum processes to sample (default 10)
	Seed     int64  // seed for the synthesized burst/arrival values
	ProcRoot string // proc filesystem root (default "/proc")
}

const (
	defaultCount = 10
	burstMin     = 2
	burstMax     = 10
	arrivalMax   = 15
)

// Sample enumerates live processes and maps them into simulator inputs.
// Processes are taken in ascending pid order so that a fixed seed yields
// a reproducible set on an unchanged process table.
func Sample(opts Options) ([]sched.ProcessInput, error) {
	if opts.Count <= 0 {
		opts.Count = defaultCount
	}
	root := opts.ProcRoot
	if root == "" {
		root = "/proc"
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	var pids []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	sort.Ints(pids)

	rng := rand.New(rand.NewSource(opts.Seed))
	inputs := make([]sched.ProcessInput, 0, opts.Count)
	for _, pid := range pids {
		if len(inputs) >= opts.Count {
			break
		}
		name, nice, err := readStat(filepath.Join(root, strconv.Itoa(pid), "stat"))
		if err != nil {
			// Processes exit between ReadDir and the stat read.
			continue
		}
		inputs = append(inputs, sched.ProcessInput{
			ID:       fmt.Sprintf("%s (%d)", name, pid),
			Arrival:  rng.Intn(arrivalMax + 1),
			Burst:    burstMin + rng.Intn(burstMax-burstMin+1),
			Priority: priorityFromNice(nice),
		})
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no readable processes under %s", root)
	}
	return inputs, nil
}

// Synthetic generates a purely random process set. The same count and
// seed always produce the same set.
func Synthetic(count int, seed int64) []sched.ProcessInput {
	rng := rand.New(rand.NewSource(seed))
	inputs := make([]sched.ProcessInput, 0, count)
	for i := 0; i < count; i++ {
		inputs = append(inputs, sched.ProcessInput{
			ID:       fmt.Sprintf("P%d", i+1),
			Arrival:  rng.Intn(arrivalMax + 1),
			Burst:    burstMin + rng.Intn(burstMax-burstMin+1),
			Priority: rng.Intn(10),
		})
	}
	return inputs
}

// priorityFromNice buckets a Unix nice value onto the simulator's
// lower-is-higher priority scale: negative niceness (privileged) maps to
// the strongest bucket, positive (background) to the weakest.
func priorityFromNice(nice int) int {
	switch {
	case nice < 0:
		return 1
	case nice == 0:
		return 5
	default:
		return 10
	}
}

// readStat extracts the command name and nice value from a
// /proc/<pid>/stat line. The command field is parenthesized and may
// contain spaces, so parsing anchors on the closing parenthesis.
func readStat(path string) (name string, nice int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}
	s := string(data)

	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return "", 0, fmt.Errorf("malformed stat %s", path)
	}
	name = s[open+1 : end]

	// Fields after the comm: state is field 3, nice is field 19.
	rest := strings.Fields(s[end+1:])
	const niceIdx = 19 - 3
	if len(rest) <= niceIdx {
		return "", 0, fmt.Errorf("short stat %s", path)
	}
	nice, err = strconv.Atoi(rest[niceIdx])
	if err != nil {
		return "", 0, fmt.Errorf("parse nice in %s: %w", path, err)
	}
	return name, nice, nil
}
