package main

import (
	"fmt"
	"io"
	"time"

	"aegis/internal/pipeline"
)

// printStageTimings prints batch stage times summed over all files.
func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	for _, stage := range []pipeline.Stage{pipeline.StageExtract, pipeline.StageGenerate} {
		if !timings.Has(stage) {
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", stage, toMillis(timings.Duration(stage)))
	}
	total := timings.Sum(pipeline.StageExtract, pipeline.StageGenerate)
	fmt.Fprintf(out, "total %.1f ms\n", toMillis(total))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
