// Package tui 는 판매전표 입력 화면을 터미널에 그립니다.
package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"lensorder/entry"
)

type quitSignal struct{}

// App 은 tcell 이벤트 루프입니다. 상태는 entry.Session 이 가지고 있습니다.
type App struct {
	screen  tcell.Screen
	session *entry.Session
	view    *view
	pressed bool
}

func New(screen tcell.Screen, session *entry.Session) *App {
	return &App{screen: screen, session: session, view: newView()}
}

// Refresh 는 다른 고루틴에서 화면을 다시 그리도록 요청합니다.
func (a *App) Refresh() {
	a.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Run 은 Ctrl+C 또는 ctx 취소까지 이벤트를 처리합니다.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	defer a.screen.DisableMouse()

	go func() {
		<-ctx.Done()
		a.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
	}()

	a.draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.handle(ev) {
			return nil
		}
		a.draw()
	}
}

// handle 은 이벤트 하나를 처리합니다. 종료해야 하면 false 입니다.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if k, ok := translateKey(ev); ok {
			a.session.HandleKey(k)
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !a.pressed {
			a.click(ev.Position())
		}
		a.pressed = down
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		if _, quit := ev.Data().(quitSignal); quit {
			return false
		}
	}
	return true
}

func (a *App) click(x, y int) {
	h, ok := a.view.hitAt(x, y)
	if !ok {
		return
	}
	a.session.Do(h.action)
}

func (a *App) draw() {
	a.session.Read(func(c *entry.Controller) {
		a.view.render(a.screen, c)
	})
	a.screen.Show()
}
