// Package flow drives the three conversational flows (goal setup, daily
// report, goal edit) as explicit step sequences over a session. It is
// transport-free: events come in, fully resolved replies and completion
// payloads come out, and the caller owns persistence.
package flow

import (
	"strconv"
	"strings"
)

// Texts is the injected read-only localization lookup.
type Texts interface {
	Get(key string) string
}

type EventKind int

const (
	EventText EventKind = iota
	EventAction
)

// Event is one inbound user action: either a text message or a button press
// carrying an action name and an optional argument.
type Event struct {
	Kind   EventKind
	Text   string
	Action string
	Arg    string
}

func TextEvent(text string) Event {
	return Event{Kind: EventText, Text: text}
}

func ActionEvent(action, arg string) Event {
	return Event{Kind: EventAction, Action: action, Arg: arg}
}

// Button actions, used as callback-data prefixes by the transport layer.
const (
	ActionTrainingType     = "training_type"
	ActionSkipCustom       = "skip_custom_goals"
	ActionCompleteCustom   = "complete_custom_goals"
	ActionTrainingDone     = "training_done"
	ActionEditGoal         = "edit_goal"
	ActionDeleteGoal       = "delete_goal"
	ActionNewGoal          = "new_goal"
	ActionEditTrainingType = "edit_training_type"
)

type Button struct {
	Text   string
	Action string
	Arg    string
}

// Reply is one outbound message: resolved text plus optional inline keyboard
// rows. The transport layer turns buttons into callback payloads.
type Reply struct {
	Text    string
	Buttons [][]Button
}

type Machine struct {
	texts Texts
}

func NewMachine(t Texts) *Machine {
	return &Machine{texts: t}
}

func (m *Machine) message(key string) Reply {
	return Reply{Text: m.texts.Get(key)}
}

func (m *Machine) template(key, arg string) Reply {
	return Reply{Text: m.texts.Get(key) + " " + arg}
}

// parseValue validates numeric value-entry input. Failures are recovered
// locally by re-prompting, never propagated.
func parseValue(text string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, false
	}
	return v, true
}

func (m *Machine) valueOrReprompt(ev Event) (int, []Reply) {
	if ev.Kind != EventText {
		return 0, []Reply{m.message("message-value-format-error")}
	}
	v, ok := parseValue(ev.Text)
	if !ok {
		return 0, []Reply{m.message("message-value-format-error")}
	}
	return v, nil
}

func (m *Machine) nameOrReprompt(ev Event) (string, []Reply) {
	if ev.Kind != EventText || strings.TrimSpace(ev.Text) == "" {
		return "", []Reply{m.message("message-value-not-a-text-error")}
	}
	return strings.TrimSpace(ev.Text), nil
}
