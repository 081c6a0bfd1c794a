package providers

// IPropertyAccessor defines scoped subscription to a single property.
// Value and Available always reflect the latest known state.
type IPropertyAccessor interface {
	Value() interface{}
	Available() bool
	Close()
}

// ISubscription defines cancellable event subscription.
type ISubscription interface {
	Close()
}

// IPropertyProvider defines property subscription facility.
// Change callbacks are invoked only when the value or availability changes.
type IPropertyProvider interface {
	Subscribe(path string, callback func(value interface{})) IPropertyAccessor
	SubscribeEvent(path string, event string, callback func(payload interface{})) ISubscription
}

// IPropertyStoreProvider extends subscriptions with the host side
// which feeds property values.
type IPropertyStoreProvider interface {
	IPropertyProvider
	Set(path string, value interface{})
	SetAvailable(path string, available bool)
	Get(path string) (value interface{}, available bool)
	Publish(path string, event string, payload interface{})
}
