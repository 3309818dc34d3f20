package cmd

import "go.uber.org/zap"

// NewLogger returns a production logger, or a development logger with debug
// level enabled if debug is set.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
