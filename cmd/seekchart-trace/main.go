package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"git.sr.ht/~whereswaldon/seekchart/sensors"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: generate a csv speed trace
Usage:

 %[1]s > file

OR

 %[1]s | seekchart -

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	dur := flag.Duration("sample-interval", 100*time.Millisecond, "Simulated interval between samples")
	outputName := flag.String("output", "-", "Output file for CSV trace data")
	count := flag.Int("samples", 0, "Number of samples to emit (0 runs until interrupted)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed for the simulated ride")
	realtime := flag.Bool("realtime", true, "Emit one sample per sample-interval instead of as fast as possible")
	unitName := flag.String("unit", sensors.KilometersPerHour.String(), "Speed unit: km/h, m/s or mph")
	flag.Parse()
	if *dur <= 0 {
		log.Fatalf("sample-interval must be positive, got %v", *dur)
	}
	unit, err := sensors.ParseUnit(*unitName)
	if err != nil {
		log.Fatalf("invalid -unit: %v", err)
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
	shutdown := func() {
		if err := buf.Flush(); err != nil {
			log.Printf("failed flushing output: %v", err)
		}
		if err := output.Close(); err != nil {
			log.Printf("failed closing output: %v", err)
		}
	}
	defer shutdown()

	sensor := sensors.NewRide(*seed).In(unit)
	fmt.Fprintf(buf, "distance (km), %s (%s)\n", sensor.Name(), sensor.Unit())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	var tick <-chan time.Time
	if *realtime {
		ticker := time.NewTicker(*dur)
		defer ticker.Stop()
		tick = ticker.C
	}
	distance := 0.0
	for i := 0; *count == 0 || i < *count; i++ {
		if tick != nil {
			select {
			case <-sigChan:
				// We've gotten an interrupt; shut down.
				return
			case <-tick:
			}
		} else {
			select {
			case <-sigChan:
				return
			default:
			}
		}
		v, err := sensor.Read()
		if err != nil {
			log.Printf("failed reading value: %v", err)
			return
		}
		fmt.Fprintf(buf, "%f, %f\n", distance, v)
		if tick != nil {
			// Readers stream rows as they arrive.
			if err := buf.Flush(); err != nil {
				log.Printf("failed writing sample: %v", err)
				return
			}
		}
		distance += sensor.Unit().ToKilometersPerHour(v) * dur.Hours()
	}
}
