// Package pipeline converts one PDF into a reflowable, annotated HTML page
// and its stylesheet.
//
// A run moves through fixed states:
//
//	Idle → Extracting → Reflowing → Annotating → Rendering → Done
//
// Any state after Idle can fail, which ends the run in Failed. Every state
// is entered on a successful run, even when there is nothing to annotate.
// Failures are reported as a *StageError naming the state that failed:
//
//	res, err := p.Run(ctx, pipeline.Request{Input: "cours.pdf", OutputDir: "out"})
//	var stageErr *pipeline.StageError
//	if errors.As(err, &stageErr) {
//	    log.Printf("failed while %s", stageErr.State)
//	}
//
// Output files are written to temporary names and renamed into place once
// both are complete, so a failed run leaves nothing in the output directory.
package pipeline
