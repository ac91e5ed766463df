package keyboard

// Action is the signal passed to listeners after an operation completes.
type Action string

// ActionInputPerformed tells the automation layer that input was delivered and
// the target application may now be busy processing it.
const ActionInputPerformed Action = "input_performed"

// ActionListener is notified once per logical keyboard operation.
type ActionListener interface {
	ActionPerformed(action Action)
}

// ActionListenerFunc adapts a function to ActionListener.
type ActionListenerFunc func(Action)

// ActionPerformed calls f.
func (f ActionListenerFunc) ActionPerformed(action Action) {
	f(action)
}

// NullListener ignores notifications.
type NullListener struct{}

// ActionPerformed does nothing.
func (NullListener) ActionPerformed(Action) {}
