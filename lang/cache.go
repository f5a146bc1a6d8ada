package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/fjord/lang/parser"
	"github.com/ardnew/fjord/log"
)

// parseCache maps the xxh3 hash of a source to its *cacheEntry. Syntax trees
// are immutable, so one parse can be shared by every caller.
var parseCache sync.Map

type cacheEntry struct {
	once   sync.Once
	source string
	output *parser.Output
}

// cachedParse returns the parse of source, parsing it at most once per
// process. A hash collision falls back to an uncached parse.
func cachedParse(ctx context.Context, logger log.Logger, source string) *parser.Output {
	hash := xxh3.HashString(source)

	v, hit := parseCache.LoadOrStore(hash, &cacheEntry{source: source})
	entry := v.(*cacheEntry)

	logger.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", hit),
	)

	if entry.source != source {
		logger.DebugContext(ctx, "cache collision",
			slog.String("source_hash", strconv.FormatUint(hash, 16)))

		return parser.Parse(source)
	}

	entry.once.Do(func() { entry.output = parser.Parse(source) })

	return entry.output
}

// ClearCache discards every cached parse.
func ClearCache() {
	parseCache.Clear()
}

// ReadSource reads all of r, reading ahead asynchronously in the
// background.
func ReadSource(r io.Reader) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return string(data), nil
}

// ParseReader reads all of r with [ReadSource] and parses it like
// [ParseString].
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Program, error) {
	source, err := ReadSource(r)
	if err != nil {
		return nil, err
	}

	return ParseString(ctx, source, opts...)
}
