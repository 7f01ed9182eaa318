package langsupport

// MaturityLevel describes how complete a resolver variant's support is.
type MaturityLevel int

const (
	MaturityUntested MaturityLevel = iota
	MaturityBasicTests
	MaturityActivelyTested
	MaturityStable
)

func (level MaturityLevel) DisplayName() string {
	switch level {
	case MaturityUntested:
		return "Untested"
	case MaturityBasicTests:
		return "Basic Tests"
	case MaturityActivelyTested:
		return "Actively Tested"
	case MaturityStable:
		return "Stable"
	default:
		return "Unknown"
	}
}
