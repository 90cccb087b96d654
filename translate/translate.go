// Package translate renders user-facing messages in the host locale.
// Message templates are written as en-US Sprintf() formats; catalogs
// for other languages can be maintained with the gotext tool.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var (
	once    sync.Once
	printer *message.Printer
)

func get() *message.Printer {
	once.Do(func() {
		locales, err := locale.GetLocales()
		if err != nil {
			log.Printf("lc2k: locale: %v", err)
		}

		if len(locales) == 0 {
			locales = []string{"en-US"}
		}

		printer = message.NewPrinter(message.MatchLanguage(locales...))
	})

	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return get().Sprintf(key, args...)
}
