// Package logger provides structured logging backed by zerolog.
//
// Loggers carry a service name and optional component tag; fields are
// passed as maps built with Fields:
//
//	log := logger.NewDefault("orders").WithComponent("rest")
//	log.Info("REST client ready", logger.Fields("resource", "users", "base_url", url))
package logger
