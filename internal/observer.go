package internal

// ChangeObserver is told about every committed move. It is called
// synchronously on the UI goroutine with a copy of the full arrangement, so a
// slow observer stalls the interface.
type ChangeObserver interface {
	ArrangementChanged(Arrangement)
}

// ObserverFunc adapts a plain function to ChangeObserver.
type ObserverFunc func(Arrangement)

func (f ObserverFunc) ArrangementChanged(a Arrangement) {
	f(a)
}
