package sync

// Reporter — опциональный CLI-вывод хода синхронизации; ядро обязано
// работать и с nil.
type Reporter interface {
	// Section opens a progress block of the given size (один бакет).
	Section(name string, steps int)
	// Step advances the current block by one window.
	Step(msg string)
	Text(msg string)
	Error(msg string)
}

func section(r Reporter, name string, steps int) {
	if r != nil {
		r.Section(name, steps)
	}
}

func step(r Reporter, msg string) {
	if r != nil {
		r.Step(msg)
	}
}

func text(r Reporter, msg string) {
	if r != nil {
		r.Text(msg)
	}
}

func reportErr(r Reporter, msg string) {
	if r != nil {
		r.Error(msg)
	}
}
