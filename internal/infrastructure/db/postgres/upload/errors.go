package upload

import "errors"

// ErrDigestAlreadyExists signals that a concurrent ingest inserted a row
// with the same content digest first. Callers recover by re-querying.
var ErrDigestAlreadyExists = errors.New("content digest already stored")
