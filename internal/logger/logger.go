package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevelAt(zap.InfoLevel)

// Init builds the global logger. production gets the JSON encoder, anything
// else the development console encoder.
func Init(environment string) error {
	var conf zap.Config
	if environment == "production" {
		conf = zap.NewProductionConfig()
		level.SetLevel(zap.InfoLevel)
	} else {
		conf = zap.NewDevelopmentConfig()
		level.SetLevel(zap.DebugLevel)
	}
	conf.Level = level

	logger, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}

// SetLevel changes the level of the global logger in place.
func SetLevel(name string) error {
	l, err := zapcore.ParseLevel(name)
	if err != nil {
		return err
	}

	level.SetLevel(l)

	return nil
}

func Level() zapcore.Level {
	return level.Level()
}
