package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger the commission engine emits its progress
// and warning notices through. It carries no behavioral contract; tests
// usually install zap.NewNop().
var Logger = zap.NewNop()

func InitLogger(logFile string, level string) error {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	atom := zap.NewAtomicLevel()
	if err := atom.UnmarshalText([]byte(level)); err != nil {
		return err
	}

	writeSyncer := zapcore.AddSync(os.Stdout)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		writeSyncer = zapcore.AddSync(file)
	}

	encoder := zapcore.NewJSONEncoder(cfg)
	core := zapcore.NewCore(encoder, writeSyncer, atom)
	Logger = zap.New(core, zap.AddCaller())

	return nil
}

// Success records an action that completed and paid out.
func Success(message string, fields ...zap.Field) {
	Logger.Info(message, append(fields, zap.String("outcome", "success"))...)
}

// Payout records a ledger write.
func Payout(message string, fields ...zap.Field) {
	Logger.Info(message, append(fields, zap.String("outcome", "payout"))...)
}
