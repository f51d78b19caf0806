package console

var (
	// mapFramebufferFn is mocked by tests.
	mapFramebufferFn = overlayFramebuffer
)
