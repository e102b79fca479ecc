package goroutine

import (
	"runtime/debug"

	"github.com/x-xyz/goauction/base/log"
)

// PanicEvent is a recovered panic and the stack it unwound
type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type options struct {
	name           string
	beforeStart    func()
	afterEnded     func()
	afterRecovered func(p interface{}, stack []byte)
}

type Option func(*options)

// WithName tags the panic log of the task
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func WithBeforeStart(f func()) Option {
	return func(o *options) { o.beforeStart = f }
}

// WithAfterEnded runs once f returns or panics, before any recovery hook
func WithAfterEnded(f func()) Option {
	return func(o *options) { o.afterEnded = f }
}

func WithAfterRecovered(f func(p interface{}, stack []byte)) Option {
	return func(o *options) { o.afterRecovered = f }
}

// Recoverable wraps f so that a panic is logged and reported instead of crashing the process.
// The returned channel yields the panic, or is closed when f returns normally.
func Recoverable(f func(), opts ...Option) (func(), <-chan *PanicEvent) {
	o := options{name: "anonymous"}
	for _, opt := range opts {
		opt(&o)
	}

	panicChan := make(chan *PanicEvent, 1)

	return func() {
		defer func() {
			if o.afterEnded != nil {
				o.afterEnded()
			}

			p := recover()
			if p == nil {
				close(panicChan)
				return
			}

			stack := debug.Stack()
			log.Log().WithFields(log.Fields{
				"task":  o.name,
				"err":   p,
				"stack": string(stack),
			}).Error("panic")

			if o.afterRecovered != nil {
				o.afterRecovered(p, stack)
			}
			panicChan <- &PanicEvent{p, stack}
		}()

		if o.beforeStart != nil {
			o.beforeStart()
		}
		f()
	}, panicChan
}

func RecoverableGo(f func(), opts ...Option) <-chan *PanicEvent {
	run, panicChan := Recoverable(f, opts...)
	go run()
	return panicChan
}
