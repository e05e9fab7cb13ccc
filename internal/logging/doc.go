// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output
//   - Development: colored console output
//
// Setting Config.File adds a rotating JSON log file (natefinch/lumberjack)
// alongside the regular outputs.
//
// Library packages take a plain *zap.Logger and default to zap.NewNop();
// only the command builds a Logger from configuration.
//
// Example Usage:
//
//	logger, err := logging.New(logging.Config{
//		Level: "debug",
//		File:  &logging.FileConfig{Path: "requests.log", MaxSizeMB: 10},
//	})
//	defer logger.Close()
//	sess := session.New(session.WithLogger(logger.Logger))
package logging
