// Package quill is a high-throughput leveled logging engine. Named
// loggers route formatted messages to one or more sinks — console,
// rotating file, daily file, syslog — either synchronously on the
// calling goroutine or asynchronously through a bounded per-logger
// queue drained by a dedicated worker goroutine.
//
// Key features:
//
//   - Ordered severity levels with an atomic per-logger threshold
//   - Sinks in locked (shareable) and unlocked (single-goroutine)
//     variants, so the async worker path pays no mutex overhead
//   - Size-based and calendar-day file rotation, guarded by a
//     cross-process flock during the rename window
//   - Bounded power-of-two async queue with a blocking or
//     counted-drop overflow policy
//   - Graceful shutdown that drains every pending message before the
//     worker exits
//   - Worker-side failures routed to an error handler callback, never
//     silently dropped
//
// Basic usage:
//
//	logger, err := quill.NewRotatingLogger("app", "/var/log/app.log",
//		10*1024*1024, 5, false)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer quill.Drop("app")
//
//	logger.Infof("server started on port %d", 8080)
//	logger.Errorf("connect failed: %v", err)
//
// Async mode:
//
//	quill.SetAsyncMode(8192, quill.OverflowBlock, nil)
//	logger, err := quill.NewDailyLogger("audit", "/var/log/audit.log", false)
//
// Loggers snapshot the construction defaults (pattern, level, async
// mode); changing them never reconfigures existing loggers.
package quill
