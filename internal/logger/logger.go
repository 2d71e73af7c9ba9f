package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New はアプリ共通のzerologロガーを作る。
// devではConsoleWriter、それ以外はJSONで出す。
func New(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if env == "dev" {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(out).With().Timestamp().Str("service", "serbburger").Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Str("service", "serbburger").Logger()
}
