package sentry

import (
	"context"
	"os"
	"time"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

// Init configures Sentry from SENTRY_DSN. With no DSN set the SDK is a no-op,
// so spans and captures elsewhere in the code are safe to leave in place.
func Init() {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              os.Getenv("SENTRY_DSN"),
		TracesSampleRate: 1.0,
	}); err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
}

// Flush drains buffered events before the process exits.
func Flush() {
	sentry.Flush(2 * time.Second)
}

func ReportError(err error) {
	sentry.CaptureException(err)
}

func ReportMessage(message string) {
	sentry.CaptureMessage(message)
}

func SetContext(name string, value map[string]interface{}) {
	sentry.GetHubFromContext(context.Background()).ConfigureScope(func(scope *sentry.Scope) {
		scope.SetContext(name, value)
		scope.SetTag("release", os.Getenv("RELEASE"))
	})
}
