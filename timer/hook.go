package timer

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// HookPosCreate triggers after the interrupt handler is installed.
var HookPosCreate = &HookPos{Name: "Create"}

// HookPosDestroy triggers after the interrupt handler is removed.
var HookPosDestroy = &HookPos{Name: "Destroy"}

// HookPosAfterProcess triggers at the end of every Process call. The item is
// a Sample.
var HookPosAfterProcess = &HookPos{Name: "AfterProcess"}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	Hooks []Hook
}

// NewHookableBase creates a HookableBase object
func NewHookableBase() *HookableBase {
	h := new(HookableBase)
	h.Hooks = make([]Hook, 0)
	return h
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.Hooks = append(h.Hooks, hook)
}

// NumHooks returns the number of registered hooks.
func (h *HookableBase) NumHooks() int {
	return len(h.Hooks)
}

// InvokeHook triggers the register Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.Hooks {
		hook.Func(ctx)
	}
}

// Sample is the state of a timer at the end of one Process call.
type Sample struct {
	Frame     uint16
	Coarse    uint32
	Precise   uint32
	GameTicks uint32
	Elapsed   uint32
	Paused    bool
}
