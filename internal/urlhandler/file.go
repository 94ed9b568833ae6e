package urlhandler

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Custom errors for file operations
var (
	ErrFileNotFound   = errors.New("input file not found")
	ErrFilePermission = errors.New("permission denied reading input file")
	ErrFileEmpty      = errors.New("input file is empty or contains no domains")
	ErrReadingFile    = errors.New("error reading input file")
)

// ReadDomainsFromFile reads one domain per line, trimming whitespace and skipping blank lines.
// Domains are returned as written; scheme handling happens when probe targets are built.
func ReadDomainsFromFile(filePath string, logger zerolog.Logger) ([]string, error) {
	fileLogger := logger.With().Str("filePath", filePath).Logger()

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		fileLogger.Error().Err(err).Msg("Input file not found")
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
	}
	if err != nil {
		fileLogger.Error().Err(err).Msg("Error checking file stat")
		return nil, fmt.Errorf("error checking file %s: %w", filePath, err)
	}
	if info.IsDir() {
		fileLogger.Error().Msg("Input path is a directory, not a file")
		return nil, fmt.Errorf("input path is a directory, not a file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsPermission(err) {
			fileLogger.Error().Err(err).Msg("Permission denied reading input file")
			return nil, fmt.Errorf("%w: %s", ErrFilePermission, filePath)
		}
		fileLogger.Error().Err(err).Msg("Error opening input file")
		return nil, fmt.Errorf("%w: %s (cause: %v)", ErrReadingFile, filePath, err)
	}
	defer file.Close()

	var domains []string
	scanner := bufio.NewScanner(file)
	totalLinesRead := 0

	for scanner.Scan() {
		totalLinesRead++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		domains = append(domains, line)
	}

	if scanErr := scanner.Err(); scanErr != nil {
		fileLogger.Error().Err(scanErr).Msg("Error during scanning of file")
		return nil, fmt.Errorf("%w: %s (scan error: %v)", ErrReadingFile, filePath, scanErr)
	}

	fileLogger.Info().
		Int("totalLinesRead", totalLinesRead).
		Int("domainCount", len(domains)).
		Msg("Finished reading domains file")

	if len(domains) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFileEmpty, filePath)
	}

	return domains, nil
}
