package dictionary

// FlushResult reports what Flush actually did, for logging and tests.
// Path is empty when mode is NoWrite.
type FlushResult struct {
	Path       string
	WordCount  int
	BytesWritten int
}
