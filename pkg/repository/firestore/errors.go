package firestore

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound indicates the requested record does not exist
var ErrNotFound = goerr.New("record not found")
