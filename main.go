package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/seekchart/backend"
	"git.sr.ht/~whereswaldon/seekchart/chart"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: explore a csv trace with a seekable chart
Usage:

 %[1]s [flags] [trace.csv]

OR

 seekchart-trace | %[1]s [flags] -

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	configPath := flag.String("config", "", "YAML file with chart configuration")
	mode := flag.String("mode", "", "Snap mode, discrete or continuous (overrides the configuration)")
	trace := flag.Bool("trace", false, "Launch the trace generator at startup")
	recordDir := flag.String("record", "", "Directory to save copies of streamed traces in")
	flag.Parse()

	cfg := chart.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = chart.ReadConfigFile(*configPath)
		if err != nil {
			log.Fatalf("failed loading configuration: %v", err)
		}
	}
	if *mode != "" {
		m, err := chart.ParseSnapMode(*mode)
		if err != nil {
			log.Fatalf("invalid -mode: %v", err)
		}
		cfg.SnapMode = m
	}

	appCtx, cancel := context.WithCancel(context.Background())
	bundle := backend.NewBundle(appCtx)
	bundle.Datasource.RecordDir = *recordDir
	switch {
	case flag.Arg(0) == "-":
		bundle.Datasource.LoadFromStream("stdin", os.Stdin)
	case flag.NArg() > 0:
		bundle.Datasource.LoadFromPath(flag.Arg(0))
	case *trace:
		if _, err := bundle.Datasource.LaunchTrace(); err != nil {
			log.Printf("failed launching trace generator: %v", err)
		}
	}

	go func() {
		w := app.NewWindow(app.Title("Seekchart"))
		if err := loop(appCtx, w, bundle, cfg); err != nil {
			log.Fatal(err)
		}
		bundle.Datasource.Close()
		cancel()
		os.Exit(0)
	}()
	app.Main()
}

func loop(ctx context.Context, w *app.Window, bundle backend.Bundle, cfg chart.Config) error {
	expl := explorer.NewExplorer(w)
	ws := backend.NewWindowState(ctx, bundle, w)
	ui := NewUI(ws, expl, cfg, w.Invalidate)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
