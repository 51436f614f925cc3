// Package config provides configuration for ephemera.
//
// Configuration is loaded from a single directory, by default
// ~/.config/ephemera, containing an optional config.yaml. Values missing
// from the file fall back to GetDefaultConfig, and environment variables
// override both:
//
//	KEEP_CONTAINERS          stop instead of remove containers on teardown
//	EPHEMERA_ENGINE          engine binary (docker, podman, or a path)
//	EPHEMERA_LOG_GRACE       minimum container age before log access
//	EPHEMERA_READY_TIMEOUT   default readiness deadline
//
// KEEP_CONTAINERS is also consulted at teardown time through
// KeepContainers, so a test run can flip it without rebuilding clients.
//
// # Image Storage
//
// Storage keeps named image documents as YAML files in the
// images/ subdirectory of the configuration directory, so the CLI can run
// an image by name:
//
//	storage := config.NewStorageWithPath(dir)
//	err := storage.Save("postgres", data)
//	data, err := storage.Load("postgres")
package config
