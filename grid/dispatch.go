package grid

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	"golang.org/x/sys/cpu"
)

// Level is the vector instruction set the parallel backend sizes its lanes for.
type Level int

const (
	// LevelScalar advances one orbit at a time.
	LevelScalar Level = iota
	// LevelSSE2 is the x86-64 baseline, 128-bit registers.
	LevelSSE2
	// LevelAVX2 has 256-bit registers.
	LevelAVX2
	// LevelAVX512 has 512-bit registers.
	LevelAVX512
	// LevelNEON is ARM's 128-bit SIMD.
	LevelNEON
)

func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelSSE2:
		return "sse2"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	case LevelNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// Lanes returns how many float64 orbits fit one register of the level.
func (l Level) Lanes() int {
	switch l {
	case LevelAVX512:
		return 8
	case LevelAVX2:
		return 4
	case LevelSSE2, LevelNEON:
		return 2
	default:
		return 1
	}
}

// NoAccelEnv is the environment variable that forces the portable backend.
const NoAccelEnv = "MANDEL_NO_ACCEL"

var (
	detectOnce    sync.Once
	detectedLevel Level
)

// CurrentLevel returns the level detected for this process. Detection runs once.
func CurrentLevel() Level {
	detectOnce.Do(func() {
		detectedLevel = detectLevel()
	})
	return detectedLevel
}

func detectLevel() Level {
	switch runtime.GOARCH {
	case "amd64":
		switch {
		case cpu.X86.HasAVX512F:
			return LevelAVX512
		case cpu.X86.HasAVX2:
			return LevelAVX2
		case cpu.X86.HasSSE2:
			return LevelSSE2
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			return LevelNEON
		}
	}
	return LevelScalar
}

// NoAccel reports whether MANDEL_NO_ACCEL asks for the portable backend only.
// Any non-empty value that does not parse as false counts.
func NoAccel() bool {
	val := os.Getenv(NoAccelEnv)
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// Available reports whether the parallel backend is worth using on this machine.
func Available() bool {
	if NoAccel() {
		return false
	}
	return runtime.GOMAXPROCS(0) > 1 || CurrentLevel() != LevelScalar
}
