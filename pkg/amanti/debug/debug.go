package debug

const (
	Debug = true
)

func IsDebug() bool {
	return Debug
}

func IsDebugShowSetup() bool {
	return Debug && isDebugShowSetupSet()
}

// IsDebugGin keeps gin in debug mode, which logs every registered route.
func IsDebugGin() bool {
	return Debug && isDebugGinSet()
}
