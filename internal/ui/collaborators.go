package ui

import "log"

// External collaborators the orchestration core calls out to. They are
// specified at the interface boundary only; the defaults below log.

// Notifier displays a user-visible toast.
type Notifier interface {
	Notify(message string)
}

// Navigator moves the user to another surface.
type Navigator interface {
	NavigateTo(path string)
}

// SidePanel controls the quick-add panel and the mini cart.
type SidePanel interface {
	CloseQuickAdd()
	OpenMiniCart()
}

type LogNotifier struct{}

func (LogNotifier) Notify(message string) {
	log.Printf("[UI] toast: %s", message)
}

type LogNavigator struct{}

func (LogNavigator) NavigateTo(path string) {
	log.Printf("[UI] navigate: %s", path)
}

type LogSidePanel struct{}

func (LogSidePanel) CloseQuickAdd() {
	log.Printf("[UI] close quick-add panel")
}

func (LogSidePanel) OpenMiniCart() {
	log.Printf("[UI] open mini cart")
}
