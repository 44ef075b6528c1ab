package entry

// KeyCode 는 화면 라이브러리와 무관한 입력 키입니다.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyTab
	KeyBacktab
	KeyF2
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
)

// Key 는 키 입력 하나입니다. Code 가 KeyRune 이면 Rune 에 문자가 들어 있습니다.
type Key struct {
	Code KeyCode
	Rune rune
}

// Press 는 문자 이외의 키를 만듭니다.
func Press(code KeyCode) Key { return Key{Code: code} }

// Char 는 문자 키를 만듭니다.
func Char(r rune) Key { return Key{Code: KeyRune, Rune: r} }

func (k Key) isArrow() bool {
	switch k.Code {
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		return true
	}
	return false
}

// isNumeric 은 수량 버퍼에 들어갈 수 있는 문자(숫자, 소수점)인지 확인합니다.
func (k Key) isNumeric() bool {
	return k.Code == KeyRune && (k.Rune >= '0' && k.Rune <= '9' || k.Rune == '.')
}

func (k Key) isErase() bool {
	return k.Code == KeyBackspace || k.Code == KeyDelete
}
