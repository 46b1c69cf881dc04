package observability

import (
	"runtime"

	"github.com/grafana/pyroscope-go"

	"github.com/riskibarqy/puzzle-league/internal/config"
	"github.com/riskibarqy/puzzle-league/internal/platform/logging"
)

// Batch parsing fans out to a worker pool and the cache store serializes on a
// mutex, so goroutine and mutex profiles ride along with CPU and heap.
var profileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
	pyroscope.ProfileMutexCount,
	pyroscope.ProfileMutexDuration,
}

const mutexProfileRate = 5

// InitPyroscope ships continuous profiles to the configured server. The
// returned stop func is a no-op when profiling is off.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PyroscopeEnabled {
		logger.Debug("profiler not started", "flag", "PYROSCOPE_ENABLED")
		return func() error { return nil }, nil
	}

	runtime.SetMutexProfileFraction(mutexProfileRate)
	profiler, err := pyroscope.Start(profilerConfig(cfg))
	if err != nil {
		return nil, err
	}

	logger.Info("profiler started",
		"application", cfg.PyroscopeAppName,
		"server_address", cfg.PyroscopeServerAddress,
		"upload_rate", cfg.PyroscopeUploadRate.String(),
	)
	return profiler.Stop, nil
}

func profilerConfig(cfg config.Config) pyroscope.Config {
	return pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              profileTags(cfg),
		ProfileTypes:      profileTypes,
	}
}

func profileTags(cfg config.Config) map[string]string {
	tags := map[string]string{
		"env":     cfg.AppEnv,
		"service": cfg.ServiceName,
		"version": cfg.ServiceVersion,
		"store":   "memory",
	}
	if cfg.UsesPostgres() {
		tags["store"] = "postgres"
	}
	if cfg.ScoreTimeZone != "" {
		tags["score_tz"] = cfg.ScoreTimeZone
	}
	return tags
}
