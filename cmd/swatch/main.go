package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jsvensson/swatch"
	"github.com/jsvensson/swatch/color"
	"github.com/jsvensson/swatch/internal/engine"
	"github.com/jsvensson/swatch/internal/format"
	"github.com/jsvensson/swatch/material"
	"github.com/jsvensson/swatch/randomcolor"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	flagVerbose    int
	flagPalette    string
	flagOut        string
	flagTemplates  string
	flagTarget     []string
	flagCheck      bool
	flagFamily     string
	flagLuminosity string
	flagSaturation string
	flagCount      int
	flagSeed       uint64
	flagPrefer     string
	version        = "dev" // Injected at build time via ldflags
)

var (
	errFmtFailed    = errors.New("some files could not be formatted")
	errNotFormatted = errors.New("some files are not formatted")
)

var rootCmd = &cobra.Command{
	Use:     "swatch",
	Short:   "Random colors, Material tones and palette files from the command line",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(flagVerbose, nil)
	},
	SilenceUsage: true,
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Print random colors",
	Args:  cobra.NoArgs,
	RunE:  runRandom,
}

var tonesCmd = &cobra.Command{
	Use:   "tones <color>",
	Short: "Print the Material tones of a seed color",
	Long:  "Print tones 100 to 900 of a seed color. The color is a #RRGGBB hex value or an SVG color name.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTones,
}

var convertCmd = &cobra.Command{
	Use:   "convert <color>...",
	Short: "Print a color in hex, RGB, HSV and HSL",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runConvert,
}

var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List the default color families",
	Args:  cobra.NoArgs,
	RunE:  runFamilies,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render templates from a palette file",
	RunE:  runGenerate,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format palette files",
	Long:  "Format one or more .swatch files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")

	randomCmd.Flags().StringVarP(&flagFamily, "family", "f", "", "restrict to a color family")
	randomCmd.Flags().StringVarP(&flagLuminosity, "luminosity", "l", "any", "luminosity: "+strings.Join(randomcolor.LuminosityNames(), ", "))
	randomCmd.Flags().StringVarP(&flagSaturation, "saturation", "s", "any", "saturation: "+strings.Join(randomcolor.SaturationTypeNames(), ", "))
	randomCmd.Flags().IntVarP(&flagCount, "count", "n", 1, "number of colors")
	randomCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "random seed for reproducible output (0 picks a random seed)")

	tonesCmd.Flags().StringVar(&flagPrefer, "prefer", "none", "text color preference: none, black, white")

	generateCmd.Flags().StringVar(&flagPalette, "palette", "palette.swatch", "path to palette file")
	generateCmd.Flags().StringVar(&flagOut, "out", "output", "output directory")
	generateCmd.Flags().StringVar(&flagTemplates, "templates", "templates", "templates directory")
	generateCmd.Flags().StringArrayVar(&flagTarget, "target", nil, "render only specific templates (can be repeated)")

	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")

	rootCmd.AddCommand(randomCmd)
	rootCmd.AddCommand(tonesCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(familiesCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

// parseColor accepts a hex value or an SVG color name.
func parseColor(s string) (color.Color, error) {
	if strings.HasPrefix(s, "#") {
		return color.ParseHex(s)
	}
	return color.Named(s)
}

func runRandom(cmd *cobra.Command, args []string) error {
	lum, err := randomcolor.ParseLuminosity(flagLuminosity)
	if err != nil {
		return err
	}
	sat, err := randomcolor.ParseSaturationType(flagSaturation)
	if err != nil {
		return err
	}

	var opts []randomcolor.Option
	if flagSeed != 0 {
		opts = append(opts, randomcolor.WithSeed(flagSeed))
	}
	g := randomcolor.New(opts...)

	colors, err := g.ColorsWith(randomcolor.Options{
		Family:         strings.ToUpper(flagFamily),
		Luminosity:     lum,
		SaturationType: sat,
	}, flagCount)
	if err != nil {
		return fmt.Errorf("sampling: %w", err)
	}

	for _, hsv := range colors {
		c := hsv.Packed()
		family := "-"
		if name, _, ok := g.FamilyOf(int(hsv.H)); ok {
			family = strings.ToLower(name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", chip(c), c.RGB(), family)
	}
	return nil
}

func runTones(cmd *cobra.Command, args []string) error {
	seed, err := parseColor(args[0])
	if err != nil {
		return err
	}
	pref, err := color.ParsePreference(flagPrefer)
	if err != nil {
		return err
	}

	tones := material.New(seed)
	out := cmd.OutOrStdout()
	for _, step := range material.Steps() {
		c, err := tones.Tone(step)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %s\n", step, chipWith(c, pref))
	}
	fmt.Fprintf(out, "text %s\n", chip(tones.TextColor()))
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for i, arg := range args {
		c, err := parseColor(arg)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}

		hsv, hsl := c.HSV(), c.HSL()
		name, _ := color.Nearest(c)
		fmt.Fprintln(out, chip(c))
		fmt.Fprintf(out, "  hex        %s\n", c.HexAlpha())
		fmt.Fprintf(out, "  rgb        %s\n", c.RGB())
		fmt.Fprintf(out, "  hsv        %.0f° %.0f%% %.0f%%\n", hsv.H, hsv.S*100, hsv.V*100)
		fmt.Fprintf(out, "  hsl        %.0f° %.0f%% %.0f%%\n", hsl.H, hsl.S*100, hsl.L*100)
		fmt.Fprintf(out, "  brightness %.0f\n", color.Brightness(c))
		fmt.Fprintf(out, "  complement %s\n", chip(color.Complement(c)))
		fmt.Fprintf(out, "  nearest    %s\n", name)
	}
	return nil
}

func runFamilies(cmd *cobra.Command, args []string) error {
	g := randomcolor.New()
	out := cmd.OutOrStdout()
	for _, name := range g.Families() {
		info, _ := g.Family(name)
		hue := "any"
		if info.HueRange != nil {
			hue = info.HueRange.String()
		}
		fmt.Fprintf(out, "%-10s hue %-10s saturation %-10s brightness %s\n",
			strings.ToLower(name), hue, info.SaturationRange, info.BrightnessRange)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	p, err := swatch.Load(flagPalette)
	if err != nil {
		return err
	}

	e := &engine.Engine{
		TemplatesDir: flagTemplates,
		OutputDir:    flagOut,
		Targets:      flagTarget,
	}

	if err := e.Run(p); err != nil {
		return fmt.Errorf("generating: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated palette files in %s\n", flagOut)
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		if flagCheck {
			changed, err := format.Changed(content)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
				hasErrors = true
				continue
			}
			if changed {
				fmt.Fprintln(cmd.OutOrStdout(), path)
				needsFormatting = true
			}
			continue
		}

		formatted, err := format.Format(content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}
		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
			hasErrors = true
		}
	}

	if hasErrors {
		return errFmtFailed
	}
	if flagCheck && needsFormatting {
		return errNotFormatted
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
