package entry

import (
	"lensorder/ledger"
)

// handleOverlayKey 는 대화상자가 열려 있을 때 모든 키를 가져갑니다.
func (c *Controller) handleOverlayKey(k Key) {
	switch o := c.overlay.(type) {
	case *ConflictOverlay:
		c.handleConflictKey(o, k)
	case *EditOverlay:
		c.handleEditKey(o, k)
	}
}

func (c *Controller) handleConflictKey(o *ConflictOverlay, k Key) {
	switch k.Code {
	case KeyLeft:
		o.Selection = (o.Selection + conflictChoices - 1) % conflictChoices
	case KeyRight:
		o.Selection = (o.Selection + 1) % conflictChoices
	case KeyEnter:
		c.resolveConflict(o.Selection)
	case KeyEscape:
		c.resolveConflict(ChoiceCancel)
	}
}

// ChooseConflict 는 마우스로 선택지를 누른 경우입니다.
func (c *Controller) ChooseConflict(choice ConflictChoice) []Effect {
	c.resolveConflict(choice)
	return c.flush()
}

// resolveConflict 는 선택한 방식으로 다시 반영하고 미뤄 둔 이동을 실행합니다.
// 취소는 새 수량을 버리고 기존 수량을 그대로 둡니다.
func (c *Controller) resolveConflict(choice ConflictChoice) {
	o, ok := c.overlay.(*ConflictOverlay)
	if !ok {
		return
	}
	c.overlay = nil
	c.buffer = ""

	switch choice {
	case ChoiceAdd:
		c.ledger.Commit(o.Product, o.Coordinate, o.Incoming, ledger.Add)
	case ChoiceReplace:
		c.ledger.Commit(o.Product, o.Coordinate, o.Incoming, ledger.Replace)
	}
	runDeferred(o.then)
}
