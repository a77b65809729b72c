package input

import (
	"sort"

	"github.com/pkg/errors"

	"linkage-renderer/internal/control"
	"linkage-renderer/internal/scene"
)

// SelectKeys toggle the registered parts in canonical order.
const SelectKeys = "1234567890asdfghjklzxcvbnm,"

// Binding is what a key does. Cmd is nil for keys that only touch the view.
type Binding struct {
	Cmd       *control.Command
	ResetView bool
}

// Keymap binds symbolic keys to controller commands and view actions.
type Keymap struct {
	bindings map[string]Binding
}

func cmd(op control.Op) *control.Command { return &control.Command{Op: op} }

// NewKeymap binds one selection key per registered part plus the fixed
// editing keys.
func NewKeymap(reg *scene.Registry) (*Keymap, error) {
	if reg.Len() > len(SelectKeys) {
		return nil, errors.Errorf("%d parts but only %d selection keys", reg.Len(), len(SelectKeys))
	}
	m := &Keymap{bindings: map[string]Binding{
		ArrowLeft:  {Cmd: cmd(control.OpAxisPrev)},
		ArrowRight: {Cmd: cmd(control.OpAxisNext)},
		ArrowUp:    {Cmd: cmd(control.OpIncrease)},
		ArrowDown:  {Cmd: cmd(control.OpDecrease)},
		Escape:     {Cmd: cmd(control.OpClear)},
		"t":        {Cmd: cmd(control.OpNextPose)},
		"r":        {ResetView: true},
		"R":        {Cmd: cmd(control.OpResetAll), ResetView: true},
	}}
	for i, id := range reg.Order() {
		m.bindings[string(SelectKeys[i])] = Binding{Cmd: &control.Command{Op: control.OpToggle, ID: id}}
	}
	return m, nil
}

// Lookup returns the binding for key.
func (m *Keymap) Lookup(key string) (Binding, bool) {
	b, ok := m.bindings[key]
	return b, ok
}

// Keys returns every bound key, sorted.
func (m *Keymap) Keys() []string {
	keys := make([]string, 0, len(m.bindings))
	for k := range m.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SelectKey returns the key that toggles the i-th registered part.
func SelectKey(i int) string {
	if i < 0 || i >= len(SelectKeys) {
		return ""
	}
	return string(SelectKeys[i])
}
