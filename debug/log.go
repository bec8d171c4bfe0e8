package debug

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/signadot/objdoc/ir"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerOnce sync.Once
	logger     *zap.SugaredLogger
)

// L returns the logger debug output is written to.
func L() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		if logger != nil {
			return
		}
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.OutputPaths = []string{"stderr"}
		cfg.DisableStacktrace = true
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err := cfg.Build()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l.Named("objdoc").Sugar()
	})
	return logger
}

// SetLogger replaces the debug logger.
func SetLogger(l *zap.Logger) {
	loggerOnce.Do(func() {})
	logger = l.Sugar()
}

// Logf formats and logs msg at debug level. *ir.Node arguments are shown as
// their location path.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Node:
			if x == nil {
				args[i] = "<nil node>"
				continue
			}
			args[i] = fmt.Sprintf("%s<%s %s>", x.Path(), x.Kind, x.Type)
		case reflect.Type:
			if x == nil {
				args[i] = "<nil type>"
			}
		case reflect.Value:
			if !x.IsValid() {
				args[i] = "<invalid>"
				continue
			}
			args[i] = x.Type().String()
		}
	}
	L().Debug(strings.TrimRight(fmt.Sprintf(msg, args...), "\n"))
}
