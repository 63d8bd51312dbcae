package config

import "runtime"

// ApplyAdaptiveJobs fills in Jobs when it was left at zero: one worker per
// CPU, but never more workers than expressions. Explicit values are kept.
func ApplyAdaptiveJobs(cfg AppConfig) AppConfig {
	if cfg.Jobs == 0 {
		cfg.Jobs = EstimateJobs(runtime.NumCPU(), len(cfg.Exprs))
	}
	return cfg
}

// EstimateJobs returns the worker count for n expressions on cpus CPUs.
func EstimateJobs(cpus, n int) int {
	switch {
	case n <= 1 || cpus <= 1:
		return 1
	case n < cpus:
		return n
	default:
		return cpus
	}
}
