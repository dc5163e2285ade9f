package service

// Service is a client subsystem that owns a goroutine or an OS handle, such as the websocket
// link or the terminal screen. Hub.InitAll and Hub.StartAll bring services up in dependency
// order; Hub.StopAll takes them down newest-first.
// Services never touch client state directly and hand work to the main loop through channels.
type Service interface {
	// Name is the registry key, e.g. "network"
	Name() string

	// Dependencies lists services whose Init must succeed first
	Dependencies() []string

	// Init receives the args given to Hub.Register, typically a config value and a logger
	Init(args ...any) error

	Start() error

	// Stop may run after a failed Init or Start and more than once
	Stop() error
}
