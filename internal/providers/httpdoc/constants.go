package httpdoc

import "time"

const (
	defaultHTTPTimeout = 10 * time.Second
	cacheBustParam     = "_ts"
	errorSnippetBytes  = 512
)
