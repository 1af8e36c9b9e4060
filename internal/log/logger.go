package log

import (
	"go.uber.org/zap"
)

// Init builds the process-wide logger and installs it as the zap global so
// packages can use zap.L()/zap.S() without threading a logger through every
// constructor.
func Init(prod bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if prod {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l, nil
}
