package hardware

import (
	"fmt"
	"log"
	"sync/atomic"
)

// InterruptSource names an interrupt line.
type InterruptSource int

// VerticalBlank fires once at the start of every frame.
const (
	VerticalBlank InterruptSource = iota
)

func (s InterruptSource) String() string {
	switch s {
	case VerticalBlank:
		return "VERTB"
	default:
		return fmt.Sprintf("InterruptSource(%d)", int(s))
	}
}

// A Handler runs in interrupt context. It must not block or allocate.
type Handler func()

// InterruptController installs and removes interrupt handlers. Installing a
// nil handler is the same as uninstalling.
type InterruptController interface {
	Install(src InterruptSource, h Handler)
	Uninstall(src InterruptSource)
}

// A Chip provides both the interrupt line and the beam position register.
type Chip interface {
	BeamSampler
	InterruptController
}

// handlerTable keeps the installed handlers so that the interrupt path can
// read them without locking.
type handlerTable struct {
	vblank atomic.Pointer[Handler]
}

func (t *handlerTable) slot(src InterruptSource) *atomic.Pointer[Handler] {
	switch src {
	case VerticalBlank:
		return &t.vblank
	default:
		log.Panicf("interrupt source %s is not supported", src)
	}

	return nil
}

func (t *handlerTable) install(src InterruptSource, h Handler) {
	slot := t.slot(src)
	if h == nil {
		slot.Store(nil)
		return
	}

	slot.Store(&h)
}

func (t *handlerTable) installed(src InterruptSource) bool {
	return t.slot(src).Load() != nil
}

func (t *handlerTable) fire(src InterruptSource) {
	if h := t.slot(src).Load(); h != nil {
		(*h)()
	}
}
