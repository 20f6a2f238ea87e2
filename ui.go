package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"strconv"
	"strings"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/seekchart/backend"
	"git.sr.ht/~whereswaldon/seekchart/chart"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

var launchIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.ActionTimeline)
	return icon
}()

var snapIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.EditorShowChart)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer
	th   *material.Theme

	chart     *ChartView
	committed int

	openBtn   widget.Clickable
	launchBtn widget.Clickable
	snapBtn   widget.Clickable
	seekBtn   widget.Clickable
	seekField component.TextField
	seekErr   string

	snapshots *stream.Stream[backend.Snapshot]
	snapshot  backend.Snapshot
	dataErr   string
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, cfg chart.Config, invalidate func()) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	th.Palette = material.Palette{
		Bg:         color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff},
		Fg:         cfg.TextColor.NRGBA(),
		ContrastBg: cfg.ThumbColor.NRGBA(),
		ContrastFg: color.NRGBA{A: 0xff},
	}
	ui := &UI{
		ws:        ws,
		th:        th,
		expl:      expl,
		chart:     NewChartView(cfg, invalidate),
		snapshots: stream.New(ws.Controller, ws.Bundle.Datasource.Snapshots),
	}
	ui.seekField.SingleLine = true
	ui.chart.Widget().Subscribe(func(ev chart.ProgressEvent) {
		if ev.Final {
			ui.committed = ev.Progress
		}
	})
	return ui
}

// setSnapshot installs the samples of a new snapshot into the chart.
func (ui *UI) setSnapshot(snap backend.Snapshot) {
	ui.snapshot = snap
	ui.dataErr = ""
	if len(snap.Samples) == 0 {
		return
	}
	if err := ui.chart.Widget().SetData(snap.Samples); err != nil {
		ui.dataErr = err.Error()
	}
}

// Update the state of the UI and handle its events.
func (ui *UI) Update(gtx C) {
	if snap, ok := ui.snapshots.ReadNew(gtx); ok {
		ui.setSnapshot(snap)
	}
	ui.seekField.Update(gtx, ui.th, "Progress")
	w := ui.chart.Widget()
	if ui.openBtn.Clicked(gtx) {
		go func() {
			if _, err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl); err != nil && !errors.Is(err, explorer.ErrUserDecline) {
				log.Printf("failed opening trace: %v", err)
			}
		}()
	}
	if ui.launchBtn.Clicked(gtx) {
		if _, err := ui.ws.Bundle.Datasource.LaunchTrace(); err != nil {
			log.Printf("failed launching trace generator: %v", err)
		}
	}
	if ui.snapBtn.Clicked(gtx) {
		if w.SnapMode() == chart.SnapDiscrete {
			w.SetSnapMode(chart.SnapContinuous)
		} else {
			w.SetSnapMode(chart.SnapDiscrete)
		}
	}
	if ui.seekBtn.Clicked(gtx) {
		ui.seekErr = ""
		progress, err := strconv.Atoi(strings.TrimSpace(ui.seekField.Text()))
		if err != nil {
			ui.seekErr = fmt.Sprintf("not a progress value: %q", ui.seekField.Text())
		} else {
			w.SetProgress(progress)
		}
	}
}

func (ui *UI) status() string {
	snap := ui.snapshot
	var parts []string
	if snap.Mode != backend.ModeNone {
		parts = append(parts, fmt.Sprintf("%s (%s)", snap.Name, snap.Mode))
	}
	parts = append(parts, fmt.Sprintf("%d samples", len(snap.Samples)))
	if snap.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d rows skipped", snap.Skipped))
	}
	w := ui.chart.Widget()
	parts = append(parts,
		fmt.Sprintf("progress %d/%d", ui.committed, w.Config().ProgressRange),
		w.SnapMode().String(),
	)
	return strings.Join(parts, " · ")
}

func (ui *UI) errorText() string {
	var errs []string
	if ui.snapshot.Err != nil {
		errs = append(errs, ui.snapshot.Err.Error())
	}
	if ui.dataErr != "" {
		errs = append(errs, ui.dataErr)
	}
	if ui.seekErr != "" {
		errs = append(errs, ui.seekErr)
	}
	return strings.Join(errs, "; ")
}

func (ui *UI) layoutToolbar(gtx C) D {
	button := func(btn *widget.Clickable, icon *widget.Icon, desc string) layout.FlexChild {
		return layout.Rigid(func(gtx C) D {
			b := material.IconButton(ui.th, btn, icon, desc)
			b.Size = 20
			b.Inset = layout.UniformInset(6)
			return layout.UniformInset(2).Layout(gtx, b.Layout)
		})
	}
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		button(&ui.openBtn, openIcon, "Open trace"),
		button(&ui.launchBtn, launchIcon, "Launch trace generator"),
		button(&ui.snapBtn, snapIcon, "Toggle snap mode"),
		layout.Flexed(1, func(gtx C) D {
			l := material.Body2(ui.th, ui.status())
			l.MaxLines = 1
			return layout.UniformInset(4).Layout(gtx, l.Layout)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Max.X = gtx.Dp(120)
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return ui.seekField.Layout(gtx, ui.th, "Progress")
		}),
		button(&ui.seekBtn, playIcon, "Seek"),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No data yet.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.launchBtn, "Launch Trace Generator").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Existing Trace").Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	paint.Fill(gtx.Ops, ui.th.Bg)
	if ui.chart.Widget().State() == nil && len(ui.snapshot.Samples) == 0 {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Flexed(1, ui.layoutStartScreen),
			layout.Rigid(ui.layoutError),
		)
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Rigid(ui.layoutError),
		layout.Flexed(1, func(gtx C) D {
			return ui.chart.Layout(gtx, ui.th)
		}),
	)
}

func (ui *UI) layoutError(gtx C) D {
	msg := ui.errorText()
	if msg == "" {
		return D{}
	}
	l := material.Body2(ui.th, msg)
	l.Color = color.NRGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff}
	return layout.UniformInset(4).Layout(gtx, l.Layout)
}
