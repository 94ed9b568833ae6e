package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aleister1102/sitemapfinder/internal/models"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CompressionType is the encoding a sitemap URL advertises through its suffix.
type CompressionType string

const (
	TypeGzip CompressionType = "gzip"
	TypeZip  CompressionType = "zip"
	TypeNone CompressionType = "none"
)

// DefaultMaxDecompressedBytes bounds how much text one compressed sitemap may expand to.
const DefaultMaxDecompressedBytes = 100 * 1024 * 1024

var locPattern = regexp.MustCompile(`<loc>([^<]+)</loc>`)

// DetectType maps a URL suffix to a compression type.
func DetectType(rawURL string) CompressionType {
	switch {
	case strings.HasSuffix(rawURL, ".gz"):
		return TypeGzip
	case strings.HasSuffix(rawURL, ".zip"):
		return TypeZip
	default:
		return TypeNone
	}
}

// IsCompressed reports whether the URL suffix marks a compressed sitemap.
func IsCompressed(rawURL string) bool {
	return DetectType(rawURL) != TypeNone
}

// Extractor decompresses sitemap payloads and pulls out the URLs in their <loc> entries.
type Extractor struct {
	maxDecompressedBytes int64
	logger               zerolog.Logger
}

// NewExtractor creates an Extractor. A non-positive limit selects DefaultMaxDecompressedBytes.
func NewExtractor(maxDecompressedBytes int64, logger zerolog.Logger) *Extractor {
	if maxDecompressedBytes <= 0 {
		maxDecompressedBytes = DefaultMaxDecompressedBytes
	}
	return &Extractor{
		maxDecompressedBytes: maxDecompressedBytes,
		logger:               logger.With().Str("component", "CompressionExtractor").Logger(),
	}
}

// Extract returns the sorted set of URLs found in the decompressed payload.
// Any decode failure is logged and yields an empty set.
func (e *Extractor) Extract(raw []byte, compressionType CompressionType) []string {
	var (
		text []byte
		err  error
	)

	switch compressionType {
	case TypeGzip:
		text, err = e.gunzip(raw)
	case TypeZip:
		text, err = e.unzipFirst(raw)
	default:
		return []string{}
	}
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("compression", string(compressionType)).
			Int("payload_size", len(raw)).
			Msg("Failed to extract URLs from compressed sitemap")
		return []string{}
	}

	return ScanLocations(decodeText(text))
}

func (e *Extractor) gunzip(raw []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, e.maxDecompressedBytes))
	if errors.Is(err, io.ErrUnexpectedEOF) && len(data) > 0 {
		// A stream cut short by the download limit still yields its complete entries.
		e.logger.Warn().
			Int("payload_size", len(raw)).
			Int("decompressed_bytes", len(data)).
			Msg("Gzip stream ended early, extracting what was decompressed")
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read gzip stream: %w", err)
	}
	return data, nil
}

// unzipFirst reads only the first entry in archive listing order.
func (e *Extractor) unzipFirst(raw []byte) ([]byte, error) {
	archive, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open zip archive: %w", err)
	}
	if len(archive.File) == 0 {
		return nil, fmt.Errorf("zip archive has no entries")
	}

	first := archive.File[0]
	entry, err := first.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry %q: %w", first.Name, err)
	}
	defer entry.Close()

	data, err := io.ReadAll(io.LimitReader(entry, e.maxDecompressedBytes))
	if err != nil {
		return nil, fmt.Errorf("read zip entry %q: %w", first.Name, err)
	}
	return data, nil
}

// decodeText decodes UTF-8 (or BOM-marked UTF-16) text, replacing invalid sequences.
func decodeText(data []byte) string {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "�")
	}
	return string(decoded)
}

// ScanLocations collects the text enclosed by <loc>...</loc> pairs without parsing XML.
func ScanLocations(text string) []string {
	found := models.NewURLSet()
	for _, match := range locPattern.FindAllStringSubmatch(text, -1) {
		found.Add(strings.TrimSpace(match[1]))
	}
	return found.Sorted()
}
