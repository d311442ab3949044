package repositorycache

import (
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/ports"
)

// Lifetimes of cached results per operation kind.
const (
	SearchTTL       = 30 * time.Second
	DetailsTTL      = 60 * time.Second
	DictionariesTTL = 5 * time.Minute
)

// DictionariesKey caches the whole dictionary set as one unit.
const DictionariesKey = "filter-dictionaries"

// SearchKey hashes the structural signature of a search request.
func SearchKey(filter insuredevent.Filter, pagination ports.Pagination) string {
	sum := xxhash.Sum64String(ports.SearchSignature(filter, pagination))
	return "search:" + strconv.FormatUint(sum, 16)
}

func ByIDKey(id string) string {
	return "byId:" + id
}
