package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ironsheep/badge-verify/internal/badge"
	"github.com/ironsheep/badge-verify/internal/imaging"
	"github.com/spf13/cobra"
)

// DefaultImagePath is verified when no path argument is given.
const DefaultImagePath = "./images/badge.jpeg"

// verifyFlags holds the flags shared by the root and serve commands.
type verifyFlags struct {
	Tolerance      float64
	Width          int
	Height         int
	Resizer        string
	AnalyzeResized bool
	JSON           bool
}

func (f *verifyFlags) options() badge.Options {
	opts := badge.DefaultOptions()
	opts.Tolerance = f.Tolerance
	opts.Width = f.Width
	opts.Height = f.Height
	opts.AnalyzeResized = f.AnalyzeResized
	return opts
}

func (f *verifyFlags) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.Float64VarP(&f.Tolerance, "tolerance", "t", badge.DefaultOptions().Tolerance, "Pixels of slack allowed beyond the measured circle radius")
	flags.IntVar(&f.Width, "width", badge.DefaultWidth, "Resize target width")
	flags.IntVar(&f.Height, "height", badge.DefaultHeight, "Resize target height")
	flags.StringVar(&f.Resizer, "resizer", imaging.DefaultResizer, "Resize backend ("+strings.Join(imaging.ResizerNames(), ", ")+")")
	flags.BoolVar(&f.AnalyzeResized, "analyze-resized", false, "Run the checks on the resized copy instead of the original pixels")
}

func newRootCmd() *cobra.Command {
	var flags verifyFlags

	cmd := &cobra.Command{
		Use:   "badge-verify [image]",
		Short: "Verify that a badge image is circular and uses happy colors",
		Long: `badge-verify loads a badge image and reports its resized size, whether all
non-transparent pixels fall within a centered circle, and whether its average
color lies in the happy yellow band.

Environment variables:
  BADGE_LOG_LEVEL=debug    Enable debug logging`,
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultImagePath
			if len(args) == 1 {
				path = args[0]
			}
			return runVerify(cmd, &flags, path)
		},
	}
	cmd.SetVersionTemplate("badge-verify {{.Version}}\n")

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the result as JSON")

	cmd.AddCommand(newServeCmd(&flags))
	return cmd
}

func newVerifier(flags *verifyFlags) (*badge.Verifier, error) {
	resizer, err := imaging.NewResizer(flags.Resizer)
	if err != nil {
		return nil, err
	}
	return badge.New(imaging.NewImageCache(), resizer, flags.options())
}

func runVerify(cmd *cobra.Command, flags *verifyFlags, path string) error {
	v, err := newVerifier(flags)
	if err != nil {
		return err
	}

	if debugEnabled() {
		log.Printf("Verifying %s (tolerance %g, resizer %s, analyze resized %t)",
			path, flags.Tolerance, flags.Resizer, flags.AnalyzeResized)
	}

	res, err := v.Verify(cmd.Context(), path)
	if err != nil {
		return err
	}

	if debugEnabled() {
		log.Printf("Average color %+v (%s), max radius %.2f over %d opaque pixels",
			res.AverageColor, res.AverageHex, res.Circle.MaxRadius, res.Circle.OpaquePixels)
	}

	if flags.JSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	return writeReport(cmd.OutOrStdout(), res)
}

func writeReport(w io.Writer, res *badge.Result) error {
	_, err := fmt.Fprintf(w,
		"Badge Verification Result:\nSize: { width: %d, height: %d }\nHas Circle: %t\nHas Happy Colors: %t\n",
		res.Width, res.Height, res.HasCircle, res.HasHappyColors)
	return err
}

func writeJSON(w io.Writer, res *badge.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
