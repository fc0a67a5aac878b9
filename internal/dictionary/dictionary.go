// Package dictionary accumulates accepted words into a set and flushes it
// to disk under one of three modes (overwrite, append, no_write).
package dictionary

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/lexforge/wdict/internal/telemetry"
	"github.com/lexforge/wdict/pkg/container"
	"github.com/lexforge/wdict/pkg/failure"
	"github.com/lexforge/wdict/pkg/fileutil"
	"github.com/lexforge/wdict/pkg/hashutil"
)

// processSeed is generated once per process and folded into temp-file
// names, so concurrent runs writing to the same output directory never
// collide on their staging file.
var processSeed = randomSeed()

func randomSeed() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is not something a temp-file name can work
		// around; fall back to a fixed seed rather than panicking, accepting
		// the (vanishingly unlikely in that failure mode) loss of
		// collision-avoidance.
		return "fallback-seed"
	}
	return hex.EncodeToString(buf[:])
}

type Dictionary struct {
	words container.Set[string]
	sink  telemetry.Sink
}

func NewDictionary(sink telemetry.Sink) *Dictionary {
	return &Dictionary{
		words: container.NewSet[string](),
		sink:  sink,
	}
}

// Insert adds word to the in-memory set. Safe to call for duplicates.
func (d *Dictionary) Insert(word string) {
	d.words.Add(word)
}

func (d *Dictionary) Size() int {
	return d.words.Size()
}

// Words returns the accumulated words in sorted order, for deterministic
// output and tests.
func (d *Dictionary) Words() []string {
	words := d.words.ToSlice()
	sort.Strings(words)
	return words
}

// Flush persists the dictionary according to mode. For Append, the
// destination file (if it exists) is read first and unioned into the set
// before writing, so the final file is the union across every flush, not
// just this run's words. The write is atomic from the caller's
// perspective: content lands in a temp file in the destination's
// directory, which is then renamed over the destination.
func (d *Dictionary) Flush(outputPath string, mode FlushMode) (FlushResult, failure.ClassifiedError) {
	if mode == NoWrite {
		return FlushResult{WordCount: d.Size()}, nil
	}

	if mode == Append {
		if err := d.unionExisting(outputPath); err != nil {
			d.recordError(outputPath, err)
			return FlushResult{}, err
		}
	}

	written, err := d.atomicWrite(outputPath)
	if err != nil {
		d.recordError(outputPath, err)
		return FlushResult{}, err
	}

	return FlushResult{Path: outputPath, WordCount: d.Size(), BytesWritten: written}, nil
}

func (d *Dictionary) unionExisting(path string) *DictionaryError {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &DictionaryError{Message: err.Error(), Retryable: false, Cause: ErrCauseReadFailure, Path: path}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			d.words.Add(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return &DictionaryError{Message: err.Error(), Retryable: false, Cause: ErrCauseReadFailure, Path: path}
	}
	return nil
}

func (d *Dictionary) atomicWrite(outputPath string) (int, *DictionaryError) {
	dir := filepath.Dir(outputPath)
	if ferr := fileutil.EnsureDir(dir); ferr != nil {
		return 0, &DictionaryError{Message: ferr.Error(), Retryable: false, Cause: ErrCausePathError, Path: dir}
	}

	hash, err := hashutil.HashBytes([]byte(outputPath+processSeed), hashutil.HashAlgoBLAKE3)
	if err != nil {
		return 0, &DictionaryError{Message: err.Error(), Retryable: false, Cause: ErrCauseHashComputationFailed, Path: outputPath}
	}
	tmpPath := filepath.Join(dir, "."+hash[:16]+".tmp")

	var buf []byte
	for _, w := range d.Words() {
		buf = append(buf, w...)
		buf = append(buf, '\n')
	}

	if err := os.WriteFile(tmpPath, buf, 0644); err != nil {
		return 0, &DictionaryError{Message: err.Error(), Retryable: false, Cause: ErrCauseWriteFailure, Path: tmpPath}
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return 0, &DictionaryError{Message: err.Error(), Retryable: false, Cause: ErrCauseWriteFailure, Path: outputPath}
	}

	return len(buf), nil
}

func (d *Dictionary) recordError(path string, err *DictionaryError) {
	d.sink.RecordError(
		time.Now(),
		"dictionary",
		"Dictionary.Flush",
		mapDictionaryErrorToMetadataCause(err),
		err.Error(),
		[]telemetry.Attribute{telemetry.NewAttr(telemetry.AttrWritePath, path)},
	)
}
