package config

import "flag"

var (
	flagConfig          = flag.String("config", "", "Path to config file")
	flagDebug           = flag.Bool("debug", false, "Enable debug logging")
	flagAsync           = flag.Bool("async", false, "Generate meshes on background workers")
	flagSync            = flag.Bool("sync", false, "Generate meshes inline on the driver goroutine")
	flagGroupSize       = flag.Int("group-size", 0, "Cells per group along X and Y")
	flagMeshSubdivision = flag.Int("mesh-subdivision", 0, "Bicubic subdivision factor (enables cubic interpolation when > 1)")
	flagWorkers         = flag.Int("workers", 0, "Maximum concurrent background mesh generations")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAsync {
		cfg.Terrain.Async = true
	}
	if *flagSync {
		cfg.Terrain.Async = false
	}
	if *flagGroupSize > 0 {
		cfg.Terrain.CellInGroupCount.X = *flagGroupSize
		cfg.Terrain.CellInGroupCount.Y = *flagGroupSize
	}
	if *flagMeshSubdivision > 0 {
		cfg.Interpolation.MeshSubdivision = *flagMeshSubdivision
		if *flagMeshSubdivision > 1 {
			cfg.Interpolation.Algorithm = AlgorithmCubic
		}
	}
	if *flagWorkers > 0 {
		cfg.Terrain.Workers = *flagWorkers
	}
}
