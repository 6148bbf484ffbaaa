package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Reference data errors
	ReferenceReadError
	ReferenceDecodeError
	ReferenceVersionError
	ReferenceInvalidError

	// Upload errors
	UploadDecodeError
	UploadValidationError

	// History errors
	HistoryOpenError
	HistoryMigrateError
	HistorySaveError
	HistoryNotFoundError
	HistoryQueryError
	HistoryDecodeError
	HistoryDisabledError

	// Database errors
	DBConnectionError

	// Output errors
	ExportFormatError
	ReportRenderError
	ChartRenderError
	ViewRenderError

	// Server errors
	ServerStartError
)
