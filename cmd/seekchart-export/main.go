package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"git.sr.ht/~whereswaldon/seekchart/backend"
	"git.sr.ht/~whereswaldon/seekchart/chart"
	"git.sr.ht/~whereswaldon/seekchart/export"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: render a csv trace to a png image
Usage:

 %[1]s [flags] trace.csv

OR

 seekchart-trace -samples 500 -realtime=false | %[1]s [flags] -

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	configPath := flag.String("config", "", "YAML file with chart configuration")
	progress := flag.Int("progress", 0, "Thumb position to render")
	width := flag.Int("width", 1280, "Image width in pixels")
	height := flag.Int("height", 720, "Image height in pixels")
	padding := flag.Float64("padding", 8, "Padding around the plot in pixels")
	outputName := flag.String("output", "chart.png", "Output file for the image, - for stdout")
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := chart.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = chart.ReadConfigFile(*configPath)
		if err != nil {
			log.Fatalf("failed loading configuration: %v", err)
		}
	}

	var input io.ReadCloser
	if name := flag.Arg(0); name == "-" {
		input = os.Stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			log.Fatalf("failed opening trace %q: %v", name, err)
		}
		input = f
	}
	samples, skipped, err := backend.ReadSamples(input)
	input.Close()
	if err != nil {
		log.Fatalf("failed reading trace: %v", err)
	}
	if skipped > 0 {
		log.Printf("skipped %d malformed rows", skipped)
	}

	var output io.WriteCloser
	if *outputName == "-" {
		output = os.Stdout
	} else {
		f, err := os.Create(*outputName)
		if err != nil {
			log.Fatalf("failed opening output file %q: %v", *outputName, err)
		}
		output = f
	}
	buf := bufio.NewWriter(output)
	err = export.Render(buf, samples, cfg, export.Options{
		Width:    *width,
		Height:   *height,
		Padding:  *padding,
		Progress: *progress,
	})
	if err == nil {
		err = buf.Flush()
	}
	if closeErr := output.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		log.Fatalf("failed exporting chart: %v", err)
	}
}
