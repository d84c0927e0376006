package plugin

// Default is the process-wide registry. Plugin packages typically
// register themselves here from init(), mirroring how payload types
// self-register in stream frameworks, so importing a plugin package is
// all it takes to make its type tag dispatchable.
var Default = NewRegistry()

// RegisterTap registers a tap with the Default registry.
func RegisterTap(name string, tap Tap) error {
	return Default.RegisterTap(name, tap)
}

// RegisterSink registers a sink with the Default registry.
func RegisterSink(name string, sink Sink) error {
	return Default.RegisterSink(name, sink)
}

// RegisterDiscoverer registers a discoverer with the Default registry.
func RegisterDiscoverer(name string, discoverer Discoverer) error {
	return Default.RegisterDiscoverer(name, discoverer)
}

// RegisterTransformer registers a transformer with the Default registry.
func RegisterTransformer(name string, transformer Transformer) error {
	return Default.RegisterTransformer(name, transformer)
}
