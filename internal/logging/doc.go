// Package logging provides the process-wide structured logger.
//
// The package wraps [log/slog] and keeps a single logger that is configured
// once at startup with Init and retrieved with GetLogger. If GetLogger is
// called first, a default stderr logger is created lazily.
//
//	if err := logging.Init(logging.Config{Level: logging.LevelDebug, OutputPath: "bookcat.log"}); err != nil {
//	    return err
//	}
//	log := logging.WithComponent("store")
//	log.Info("catalog saved", "rows", n)
//
// The TUI owns the terminal, so it logs to a file or discards output.
package logging
