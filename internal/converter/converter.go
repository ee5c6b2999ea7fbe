// Package converter provides the Gregorian-to-Hijri backends behind
// hijri.Converter: an offline arithmetical calendar and the Al Adhan API.
package converter

import (
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/hijri-cal/internal/api"
	"github.com/smokyabdulrahman/hijri-cal/internal/cache"
	"github.com/smokyabdulrahman/hijri-cal/internal/hijri"
)

// Converter sources.
const (
	SourceAlAdhan = "aladhan"
	SourceTabular = "tabular"
)

// Sources lists the accepted source names.
var Sources = []string{SourceAlAdhan, SourceTabular}

// New returns the converter for source. client defaults to api.NewClient
// and c may be nil to skip disk caching; both are ignored for tabular.
func New(source, method string, client *api.Client, c *cache.Cache) (hijri.Converter, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case SourceAlAdhan, "":
		if client == nil {
			client = api.NewClient()
		}
		var mc MonthCache
		if c != nil {
			mc = c
		}
		return NewRemote(client, mc, method), nil
	case SourceTabular:
		return Tabular{}, nil
	default:
		return nil, fmt.Errorf("unknown source %q (valid: %s)", source, strings.Join(Sources, ", "))
	}
}
