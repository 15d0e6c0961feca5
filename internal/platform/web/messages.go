package web

import (
	"github.com/vovakirdan/pachinko-arcade/internal/core"
)

// Input message types sent by the browser.
const (
	MsgPointer = "pointer"
	MsgKey     = "key"
	MsgResize  = "resize"
	MsgFrame   = "frame"
)

// InputMessage is one client event. Pointer coordinates are screen cells.
type InputMessage struct {
	Type   string `json:"type"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Down   bool   `json:"down,omitempty"`
	Action string `json:"action,omitempty"` // core.Action name, e.g. "Left"
	Cols   int    `json:"cols,omitempty"`
	Rows   int    `json:"rows,omitempty"`
}

// StateMessage mirrors core.GameState on the wire.
type StateMessage struct {
	Score    int  `json:"score"`
	Lives    int  `json:"lives"`
	GameOver bool `json:"gameOver"`
	Paused   bool `json:"paused"`
}

// FrameMessage is sent after every simulated tick.
type FrameMessage struct {
	Type   string       `json:"type"`
	Tick   int          `json:"tick"`
	Screen []string     `json:"screen"`
	State  StateMessage `json:"state"`
}

func stateMessage(s core.GameState) StateMessage {
	return StateMessage{
		Score:    s.Score,
		Lives:    s.Lives,
		GameOver: s.GameOver,
		Paused:   s.Paused,
	}
}

// applyInput folds a client message into the frame being collected.
// It reports whether the message was understood.
func applyInput(msg InputMessage, frame *core.InputFrame) bool {
	switch msg.Type {
	case MsgPointer:
		if msg.Down {
			frame.PressPointer(msg.X, msg.Y)
		} else {
			frame.MovePointer(msg.X, msg.Y)
		}
		return true
	case MsgKey:
		a := core.ParseAction(msg.Action)
		if a == core.ActionNone {
			return false
		}
		frame.Set(a)
		return true
	}
	return false
}
