package xlog

import (
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// FxXLogger forwards the fx lifecycle events to an XLogger named "Fx".
type FxXLogger struct {
	logger XLogger
}

var _ fxevent.Logger = (*FxXLogger)(nil)

func (l *FxXLogger) LogEvent(event fxevent.Event) {
	if l == nil || l.logger == nil {
		return
	}

	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		l.logger.Debug("fx hook OnStart executing",
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
		)
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			l.logger.Error(e.Err, "fx hook OnStart failed",
				zap.String("function", e.FunctionName),
				zap.Duration("in", e.Runtime),
			)
			return
		}
		l.logger.Debug("fx hook OnStart executed",
			zap.String("function", e.FunctionName),
			zap.Duration("in", e.Runtime),
		)
	case *fxevent.OnStopExecuting:
		l.logger.Debug("fx hook OnStop executing",
			zap.String("function", e.FunctionName),
			zap.String("caller", e.CallerName),
		)
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			l.logger.Error(e.Err, "fx hook OnStop failed",
				zap.String("function", e.FunctionName),
				zap.Duration("in", e.Runtime),
			)
			return
		}
		l.logger.Debug("fx hook OnStop executed",
			zap.String("function", e.FunctionName),
			zap.Duration("in", e.Runtime),
		)
	case *fxevent.Supplied:
		if e.Err != nil {
			l.logger.Error(e.Err, "fx supply failed", zap.String("type", e.TypeName))
			return
		}
		l.logger.Debug("fx supplied", zap.String("type", e.TypeName))
	case *fxevent.Provided:
		for _, rtype := range e.OutputTypeNames {
			l.logger.Debug("fx provided",
				zap.String("rtype", rtype),
				zap.String("constructor", e.ConstructorName),
				zap.Bool("private", e.Private),
			)
		}
		if e.Err != nil {
			l.logger.Error(e.Err, "fx provide failed", zap.Strings("stacktrace", e.StackTrace))
		}
	case *fxevent.Invoking:
		l.logger.Debug("fx invoking", zap.String("function", e.FunctionName))
	case *fxevent.Invoked:
		if e.Err != nil {
			l.logger.Error(e.Err, "fx invoke failed",
				zap.String("function", e.FunctionName),
				zap.String("trace", e.Trace),
			)
		}
	case *fxevent.Stopping:
		l.logger.Info("fx stopping", zap.String("signal", e.Signal.String()))
	case *fxevent.Stopped:
		if e.Err != nil {
			l.logger.Error(e.Err, "fx failed to stop cleanly")
		}
	case *fxevent.RollingBack:
		l.logger.Warn("fx start failed, rolling back", zap.Error(e.StartErr))
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.logger.Error(e.Err, "fx failed to roll back cleanly")
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.logger.Error(e.Err, "fx failed to start")
			return
		}
		l.logger.Debug("fx running")
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			l.logger.Error(e.Err, "fx failed to initialize custom logger")
			return
		}
		l.logger.Debug("fx custom logger initialized", zap.String("constructor", e.ConstructorName))
	}
}

func NewFxXLogger(logger XLogger) *FxXLogger {
	if logger == nil {
		return &FxXLogger{}
	}
	xl, ok := logger.(*xLogger)
	if !ok {
		return &FxXLogger{logger: logger}
	}
	l := &xLogger{
		ctxFields:           xl.ctxFields,
		dynamicLevelEnabler: xl.dynamicLevelEnabler,
		writer:              xl.writer,
		encoder:             xl.encoder,
	}
	l.logger.Store(xl.zap().Named("Fx"))
	return &FxXLogger{logger: l}
}
