package domain

import "errors"

var ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")
var ErrUnsupportedFileType = errors.New("unsupported file type")
var ErrMissingFile = errors.New("a file attachment is required")
