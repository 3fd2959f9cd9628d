package jiggler

// State is the lifecycle of one jiggler run.
type State int32

const (
	StateRunning State = iota
	StateStopRequested
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopRequested:
		return "stop-requested"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StopReason records why a run ended.
type StopReason int

const (
	ReasonNone StopReason = iota
	ReasonRequested
	ReasonFailsafe
	ReasonExpired
	ReasonCancelled
)

func (r StopReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonRequested:
		return "requested"
	case ReasonFailsafe:
		return "failsafe"
	case ReasonExpired:
		return "expired"
	case ReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Health represents the runtime health of input synthesis
type Health int

const (
	HealthUnknown Health = iota
	HealthOK
	HealthFailing
)

func (h Health) String() string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthFailing:
		return "failing"
	default:
		return "unknown"
	}
}
