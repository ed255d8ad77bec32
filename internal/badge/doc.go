// Package badge verifies badge images.
//
// A Verifier loads an image, resizes a working copy to the target size and runs
// the circle boundary and happy color checks from package detection. The
// result reports the resized dimensions together with both verdicts.
//
// The checks run on the decoded image unless Options.AnalyzeResized is set, in
// which case they run on the resized copy whose size is reported.
package badge
