// Package gui runs the kiosk window showing two pages side by side.
package gui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mstand/library"
	"mstand/state"
	"mstand/viewer"
)

// tapArea is a transparent overlay over the whole spread. Tapping the right
// half flips forward, the left half backward. This is the only touch surface
// the kiosk needs.
type tapArea struct {
	widget.BaseWidget
	onLeft  func()
	onRight func()
}

func newTapArea(onLeft, onRight func()) *tapArea {
	a := &tapArea{onLeft: onLeft, onRight: onRight}
	a.ExtendBaseWidget(a)
	return a
}

func (a *tapArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (a *tapArea) Tapped(ev *fyne.PointEvent) {
	if ev.Position.X < a.Size().Width/2 {
		a.onLeft()
	} else {
		a.onRight()
	}
}

type stand struct {
	win    fyne.Window
	left   *canvas.Image
	right  *canvas.Image
	spread *viewer.Spread
	loader *viewer.Loader
	log    *zap.Logger
}

func (s *stand) refresh() {
	left, right, err := s.loader.Pages(s.spread)
	if err != nil {
		s.log.Error("Unable to load spread", zap.Int("pos", s.spread.Pos()), zap.Error(err))
		return
	}
	s.left.Image = left
	s.right.Image = right
	s.left.Refresh()
	s.right.Refresh()

	rec := s.loader.Record()
	s.win.SetTitle(fmt.Sprintf("%s [%d/%d]", rec.Title, s.spread.Pos()/2+1, s.spread.SpreadCount()))
}

func (s *stand) next() {
	if s.spread.Next() {
		s.refresh()
	}
}

func (s *stand) prev() {
	if s.spread.Prev() {
		s.refresh()
	}
}

func (s *stand) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyRight, fyne.KeySpace, fyne.KeyPageDown, fyne.KeyEnter, fyne.KeyReturn:
		s.next()
	case fyne.KeyLeft, fyne.KeyPageUp, fyne.KeyBackspace:
		s.prev()
	case fyne.KeyHome:
		if s.spread.First() {
			s.refresh()
		}
	case fyne.KeyEnd:
		if s.spread.Last() {
			s.refresh()
		}
	case fyne.KeyEscape, fyne.KeyQ:
		s.win.Close()
	}
}

// RunView implements the "view" subcommand. With no argument the first title
// in the menu order is shown.
func RunView(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("view")
	cfg := &env.Cfg.Viewer

	lib, err := library.Open(env.Cfg.Library.Root, env.Cfg.Library.IndexFormat, log)
	if err != nil {
		return fmt.Errorf("unable to open library: %w", err)
	}

	var rec library.Record
	if cmd.NArg() > 0 {
		key := cmd.Args().Get(0)
		var ok bool
		if rec, ok = lib.Find(key); !ok {
			return fmt.Errorf("title not found: %s", key)
		}
	} else {
		recs := lib.List()
		if len(recs) == 0 {
			return errors.New("library is empty, nothing to show")
		}
		rec = recs[0]
	}
	if len(rec.Pages) == 0 {
		return fmt.Errorf("title %q has no pages", rec.Title)
	}

	if len(env.FillerImage) == 0 && len(cfg.FillerImagePath) > 0 {
		if env.FillerImage, err = os.ReadFile(cfg.FillerImagePath); err != nil {
			return fmt.Errorf("unable to read filler image: %w", err)
		}
	}
	filler, err := viewer.FillerImage(env.FillerImage, cfg.ScreenHeight)
	if err != nil {
		return err
	}

	log.Info("Opening title",
		zap.String("title", rec.Title),
		zap.Int("pages", len(rec.Pages)),
		zap.Bool("fullscreen", cfg.Fullscreen))

	s := &stand{
		spread: viewer.NewSpread(len(rec.Pages)),
		loader: viewer.NewLoader(lib, rec, cfg.ScreenHeight, filler, log),
		log:    log,
	}

	half := fyne.NewSize(float32(cfg.ScreenWidth)/2, float32(cfg.ScreenHeight))
	s.left = canvas.NewImageFromImage(nil)
	s.left.FillMode = canvas.ImageFillContain
	s.left.ScaleMode = canvas.ImageScaleSmooth
	s.left.SetMinSize(half)
	s.right = canvas.NewImageFromImage(nil)
	s.right.FillMode = canvas.ImageFillContain
	s.right.ScaleMode = canvas.ImageScaleSmooth
	s.right.SetMinSize(half)

	a := app.NewWithID("com.github.mstand")
	s.win = a.NewWindow(rec.Title)
	s.win.SetPadded(false)
	s.win.SetContent(container.NewStack(
		container.NewGridWithColumns(2, s.left, s.right),
		newTapArea(s.prev, s.next),
	))
	s.win.Resize(fyne.NewSize(float32(cfg.ScreenWidth), float32(cfg.ScreenHeight)))
	s.win.SetFullScreen(cfg.Fullscreen)
	s.win.Canvas().SetOnTypedKey(s.typedKey)

	go func() {
		<-ctx.Done()
		fyne.Do(s.win.Close)
	}()

	s.refresh()
	s.win.ShowAndRun()
	return nil
}
