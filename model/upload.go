package model

import "time"

// UploadStatus is the state of an upload widget
type UploadStatus string

// UploadStatus constants
const (
	StatusIdle    UploadStatus = "idle"
	StatusLoading UploadStatus = "loading"
	StatusSuccess UploadStatus = "success"
	StatusError   UploadStatus = "error"
)

// Messages shown by the upload widget and the connectivity line
const (
	MessageUploaded     = "Uploaded successfully"
	MessageUploadFailed = "Upload failed"

	ProbeChecking    = "Checking..."
	ProbeUnreachable = "Backend not reachable"
	ProbeConnected   = "Connected: "
)

// SelectedFile is a file picked by the user, held in memory until submitted
type SelectedFile struct {
	Name    string
	Content []byte
}

// Size returns the content length in bytes
func (f *SelectedFile) Size() int {
	return len(f.Content)
}

// FileInfo describes the selected file without its content
type FileInfo struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// UploadSession is a point-in-time copy of an upload widget's state
type UploadSession struct {
	ID           string       `json:"id"`
	SelectedFile *FileInfo    `json:"selected_file,omitempty"`
	Status       UploadStatus `json:"status"`
	Message      string       `json:"message,omitempty"`
	Preview      *string      `json:"preview,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Loading reports whether an upload is in flight
func (s UploadSession) Loading() bool {
	return s.Status == StatusLoading
}
