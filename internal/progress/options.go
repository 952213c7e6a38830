package progress

// DefaultInventorySlots is the length of the inventory bar.
const DefaultInventorySlots = 8

type options struct {
	publisher Publisher
	catalog   ItemCatalog
	slots     int
}

type Option func(*options)

func newOptions(opts []Option) options {
	o := options{slots: DefaultInventorySlots}
	for _, opt := range opts {
		opt(&o)
	}
	o.publisher = publisherOrNop(o.publisher)
	return o
}

// WithPublisher announces every committed change to p.
func WithPublisher(p Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

// WithCatalog sets the item catalog used for stack groups and consumables.
func WithCatalog(c ItemCatalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}

// WithInventorySlots sets the number of inventory slots.
func WithInventorySlots(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.slots = n
		}
	}
}
