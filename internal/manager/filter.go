package manager

import (
	"fmt"
	"sync"
)

// Option is one selectable filter card: statuses, amenities, payment
// methods, periods.
type Option struct {
	Value       string
	Label       string
	Icon        string
	Description string
	// NeedsInput marks options like "custom date range" that swap the option
	// list for an input form and only commit on Apply.
	NeedsInput bool
}

// Picker is a single-select filter. Picking a plain option commits
// immediately; picking a NeedsInput option stages it until Apply.
type Picker struct {
	mu      sync.Mutex
	options []Option
	active  string
	input   string
	pending string
}

func NewPicker(options []Option) *Picker {
	return &Picker{options: options}
}

func (p *Picker) Options() []Option {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Option, len(p.options))
	copy(out, p.options)
	return out
}

func (p *Picker) find(value string) (Option, bool) {
	for _, opt := range p.options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// Pick selects an option. The returned bool reports whether the selection
// committed immediately; false means the option needs secondary input and is
// staged until Apply.
func (p *Picker) Pick(value string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	opt, ok := p.find(value)
	if !ok {
		return false, fmt.Errorf("unknown filter option %q", value)
	}
	if opt.NeedsInput {
		p.pending = value
		return false, nil
	}
	p.active = value
	p.input = ""
	p.pending = ""
	return true, nil
}

// Apply commits the staged option with its secondary input (e.g. a custom
// date range).
func (p *Picker) Apply(input string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending == "" {
		return fmt.Errorf("no pending filter option to apply")
	}
	p.active = p.pending
	p.input = input
	p.pending = ""
	return nil
}

// CancelPending abandons a staged NeedsInput option, keeping the previous
// committed selection.
func (p *Picker) CancelPending() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = ""
}

// Active returns the committed selection and its secondary input, empty
// strings when nothing is selected.
func (p *Picker) Active() (value, input string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active, p.input
}

// Clear drops the selection entirely.
func (p *Picker) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = ""
	p.input = ""
	p.pending = ""
}
