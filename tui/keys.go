package tui

import (
	"github.com/gdamore/tcell/v2"

	"lensorder/entry"
)

var keyMap = map[tcell.Key]entry.KeyCode{
	tcell.KeyUp:         entry.KeyUp,
	tcell.KeyDown:       entry.KeyDown,
	tcell.KeyLeft:       entry.KeyLeft,
	tcell.KeyRight:      entry.KeyRight,
	tcell.KeyEnter:      entry.KeyEnter,
	tcell.KeyBackspace:  entry.KeyBackspace,
	tcell.KeyBackspace2: entry.KeyBackspace,
	tcell.KeyDelete:     entry.KeyDelete,
	tcell.KeyEscape:     entry.KeyEscape,
	tcell.KeyTab:        entry.KeyTab,
	tcell.KeyBacktab:    entry.KeyBacktab,
	tcell.KeyF2:         entry.KeyF2,
	tcell.KeyF5:         entry.KeyF5,
	tcell.KeyF6:         entry.KeyF6,
	tcell.KeyF7:         entry.KeyF7,
	tcell.KeyF8:         entry.KeyF8,
	tcell.KeyF9:         entry.KeyF9,
	tcell.KeyF10:        entry.KeyF10,
}

// translate 는 tcell 키를 상태 기계의 키로 바꿉니다. 쓰지 않는 키는 false 입니다.
func translate(key tcell.Key, r rune, mod tcell.ModMask) (entry.Key, bool) {
	if key == tcell.KeyRune {
		if mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return entry.Key{}, false
		}
		return entry.Char(r), true
	}
	code, ok := keyMap[key]
	if !ok {
		return entry.Key{}, false
	}
	return entry.Press(code), true
}

func translateKey(ev *tcell.EventKey) (entry.Key, bool) {
	return translate(ev.Key(), ev.Rune(), ev.Modifiers())
}
