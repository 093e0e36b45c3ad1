package form

// Props is what a bound widget renders with.
type Props struct {
	Name              string
	Label             string
	Value             any
	Status            Status
	Message           string
	Focused           bool
	Validating        bool
	ValidatingMessage string
	Required          bool

	// OnChange must be called with the new raw value on every user edit.
	OnChange func(value any)
	OnFocus  func()
	OnBlur   func()
}

// Widget is anything that can render a field. Render may be called from the
// goroutine that settles an async validation.
type Widget interface {
	Render(Props)
}

// WidgetFunc adapts a function to Widget.
type WidgetFunc func(Props)

func (f WidgetFunc) Render(p Props) { f(p) }

// Binder attaches a widget to a declared field. A nil widget binds the field
// headless: it validates and mirrors state but renders nothing.
type Binder func(w Widget) *BoundWidget

// BoundWidget is a widget attached to its field controller.
type BoundWidget struct {
	ctrl *FieldController
}

// Controller returns the field controller handle.
func (b *BoundWidget) Controller() *FieldController {
	return b.ctrl
}

// Render renders the widget with the current field state.
func (b *BoundWidget) Render() {
	b.ctrl.render()
}

// Unmount detaches the controller from the registry. The field record is kept,
// so binding again restores the last known value.
func (b *BoundWidget) Unmount() {
	b.ctrl.registry.unmount(b.ctrl)
}
