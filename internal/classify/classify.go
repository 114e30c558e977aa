// Package classify estimates whether a PDF already carries a usable text
// layer or needs OCR, by sampling the leading pages.
package classify

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/minase-lab/pdfshelf/constants"
	"github.com/minase-lab/pdfshelf/internal/pdfdoc"
)

// Classification is the sampled verdict on one document.
type Classification struct {
	TotalPages    int
	SampledPages  int
	Kind          constants.PdfKind
	TextPageRatio float64
}

// Config carries the tunable policy constants. They are deliberate fixed
// defaults, not values inferred from data.
type Config struct {
	SamplePages  int     // leading pages inspected, default 6
	Threshold    float64 // textful-page ratio at or above which the PDF counts as text, default 0.3
	MinTextChars int     // stripped text length for a page to count as textful, default 20
	CacheSize    int     // classification results kept, default 256
}

// Classifier samples documents and caches verdicts keyed by the file's
// modification marker.
type Classifier struct {
	cfg    Config
	open   pdfdoc.Opener
	cache  *resultCache
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SamplePages <= 0 {
		cfg.SamplePages = 6
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = 0.3
	}
	if cfg.MinTextChars <= 0 {
		cfg.MinTextChars = 20
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 256
	}
	return &Classifier{
		cfg:    cfg,
		open:   pdfdoc.Open,
		cache:  newResultCache(cfg.CacheSize),
		logger: logger,
	}
}

// Classify samples path. modTime is purely a cache-invalidation key: callers
// must pass the file's current modification marker (e.g. mtime in
// nanoseconds) so a cached verdict is never served for a changed file.
//
// Failures never propagate: an unreadable document is reported as an image
// PDF so a broken file queues for OCR instead of blocking the batch.
func (c *Classifier) Classify(path string, modTime int64) Classification {
	key := cacheKey{path: path, modTime: modTime, sample: c.cfg.SamplePages, threshold: c.cfg.Threshold}
	if res, ok := c.cache.get(key); ok {
		return res
	}

	res := c.scan(path)
	c.cache.put(key, res)
	return res
}

func (c *Classifier) scan(path string) Classification {
	doc, err := c.open(path)
	if err != nil {
		c.logger.Debug("classify: open failed, assuming image pdf", "path", path, "error", err)
		return Classification{Kind: constants.KindImage}
	}
	defer func() {
		_ = doc.Close()
	}()

	total := doc.NumPages()
	if total <= 0 {
		return Classification{TotalPages: total, Kind: constants.KindImage}
	}

	sampled := min(c.cfg.SamplePages, total)
	textful := 0
	for i := 0; i < sampled; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			// A bad page counts as non-textful; keep scanning.
			continue
		}
		// Character count, not bytes: CJK pages would otherwise hit the
		// cutoff with a third of the text.
		if utf8.RuneCountInString(strings.TrimSpace(text)) >= c.cfg.MinTextChars {
			textful++
		}
	}

	kind, ratio := Decide(textful, sampled, c.cfg.Threshold)
	return Classification{
		TotalPages:    total,
		SampledPages:  sampled,
		Kind:          kind,
		TextPageRatio: ratio,
	}
}

// Decide is the pure classification rule: a document is a text PDF iff the
// textful fraction of sampled pages reaches threshold.
func Decide(textful, sampled int, threshold float64) (constants.PdfKind, float64) {
	if sampled <= 0 {
		return constants.KindImage, 0
	}
	ratio := float64(textful) / float64(sampled)
	if ratio >= threshold {
		return constants.KindText, ratio
	}
	return constants.KindImage, ratio
}
