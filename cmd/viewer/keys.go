package main

import (
	"github.com/gdamore/tcell/v2"

	mandel "github.com/marben/mandel_hues"
)

type action int

const (
	actNone action = iota
	actRecompute
	actRecolor
	actRotateHues
	actSave
	actQuit
)

const (
	panStep  = 0.1
	zoomStep = 1.5
	iterStep = 100
)

// state is what the keys edit: the next view and the spacing.
type state struct {
	view    mandel.ViewDefinition
	spacing mandel.SpacingParameters
}

// applyKey edits st for one key press and reports what has to happen next.
func applyKey(st state, ev *tcell.EventKey) (state, action) {
	v := &st.view
	sp := &st.spacing
	pan := panStep * float64(v.Width) / v.Scale

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return st, actQuit
	case tcell.KeyLeft:
		v.CenterRe -= pan
		return st, actRecompute
	case tcell.KeyRight:
		v.CenterRe += pan
		return st, actRecompute
	case tcell.KeyUp:
		v.CenterIm += pan
		return st, actRecompute
	case tcell.KeyDown:
		v.CenterIm -= pan
		return st, actRecompute
	case tcell.KeyRune:
	default:
		return st, actNone
	}

	switch ev.Rune() {
	case 'q':
		return st, actQuit
	case '+', '=':
		v.Scale *= zoomStep
		return st, actRecompute
	case '-':
		v.Scale /= zoomStep
		return st, actRecompute
	case 'i':
		v.MaxIteration += iterStep
		return st, actRecompute
	case 'I':
		v.MaxIteration = max(iterStep, v.MaxIteration-iterStep)
		return st, actRecompute
	case 'f':
		v.FastCalc = !v.FastCalc
		return st, actRecompute
	case 'b':
		sp.BlockCount++
		return st, actRecolor
	case 'B':
		sp.BlockCount = max(1, sp.BlockCount-1)
		return st, actRecolor
	case 'n':
		sp.SpacingNear += 0.25
		return st, actRecolor
	case 'N':
		sp.SpacingNear = max(0, sp.SpacingNear-0.25)
		return st, actRecolor
	case 'm':
		sp.SpacingFar += 0.25
		return st, actRecolor
	case 'M':
		sp.SpacingFar = max(0, sp.SpacingFar-0.25)
		return st, actRecolor
	case 'y':
		sp.YInput = min(1, sp.YInput+0.05)
		return st, actRecolor
	case 'Y':
		sp.YInput = max(0, sp.YInput-0.05)
		return st, actRecolor
	case 'h':
		return st, actRotateHues
	case 's':
		return st, actSave
	}
	return st, actNone
}
