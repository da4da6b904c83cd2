package conlog

import "log"

var (
	p  func(string, ...interface{}) = func(format string, v ...interface{}) { log.Printf(format, v...) }
	sp func(string, ...interface{}) = func(format string, v ...interface{}) { log.Printf(format, v...) }
	dp bool
)

func SetPrintf(f func(string, ...interface{})) {
	p = f
}

func SetSavePrintf(f func(string, ...interface{})) {
	sp = f
}

// SetDeveloper controls whether DPrintf output is shown.
func SetDeveloper(on bool) {
	dp = on
}

func Printf(format string, v ...interface{}) {
	p(format, v...)
}

func SafePrintf(format string, v ...interface{}) {
	sp(format, v...)
}

// DPrintf only prints when developer mode is on.
func DPrintf(format string, v ...interface{}) {
	if dp {
		p(format, v...)
	}
}
