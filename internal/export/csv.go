// Package export renders simulation results in interchange formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/me/schedsim/pkg/sched"
)

var csvHeader = []string{
	"id", "arrival", "burst", "priority", "final_priority",
	"start", "completion", "waiting", "turnaround", "response", "starved",
}

// WriteCSV writes one row per process, in registration order, preceded
// by a header row.
func WriteCSV(w io.Writer, res *sched.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, pm := range res.Processes {
		row := []string{
			pm.ID,
			strconv.Itoa(pm.Arrival),
			strconv.Itoa(pm.Burst),
			strconv.Itoa(pm.Priority),
			strconv.Itoa(pm.FinalPriority),
			strconv.Itoa(pm.Start),
			strconv.Itoa(pm.Completion),
			strconv.Itoa(pm.Waiting),
			strconv.Itoa(pm.Turnaround),
			strconv.Itoa(pm.Response),
			strconv.FormatBool(pm.Starved),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", pm.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTimelineCSV writes the execution timeline, one row per
// interval. Idle intervals carry an empty id.
func WriteTimelineCSV(w io.Writer, res *sched.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"process_id", "start", "end"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, iv := range res.Intervals {
		row := []string{iv.ProcessID, strconv.Itoa(iv.Start), strconv.Itoa(iv.End)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
