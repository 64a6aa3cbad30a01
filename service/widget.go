package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AnTengye/tenantdesk/model"
	"github.com/AnTengye/tenantdesk/pkg/logger"
)

// Uploader sends a selected file to the backend
type Uploader interface {
	Upload(ctx context.Context, file *model.SelectedFile) (*UploadResponse, error)
}

// UploadWidget holds the upload state of one browser session. At most one
// upload is in flight at a time.
type UploadWidget struct {
	id       string
	uploader Uploader
	timeout  time.Duration
	seq      uint64 // mount order within a store

	mu        sync.Mutex
	file      *model.SelectedFile
	status    model.UploadStatus
	message   string
	preview   *string
	createdAt time.Time
	updatedAt time.Time

	inflight sync.WaitGroup
	group    *sync.WaitGroup // owning store's uploads, survives eviction
}

// NewUploadWidget creates an idle widget. A zero timeout means uploads are
// bounded only by the uploader itself.
func NewUploadWidget(id string, uploader Uploader, timeout time.Duration) *UploadWidget {
	now := time.Now()
	return &UploadWidget{
		id:        id,
		uploader:  uploader,
		timeout:   timeout,
		status:    model.StatusIdle,
		createdAt: now,
		updatedAt: now,
	}
}

func (w *UploadWidget) ID() string {
	return w.id
}

func (w *UploadWidget) CreatedAt() time.Time {
	return w.createdAt
}

// Select replaces the chosen file. Passing nil clears the selection.
func (w *UploadWidget) Select(file *model.SelectedFile) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.file = file
	w.updatedAt = time.Now()
}

// Submit starts uploading the selected file and reports whether it did.
// It is a no-op when nothing is selected or an upload is already running.
// The upload outlives ctx cancellation; only its values are inherited.
func (w *UploadWidget) Submit(ctx context.Context) bool {
	w.mu.Lock()
	if w.file == nil || w.status == model.StatusLoading {
		w.mu.Unlock()
		return false
	}
	file := w.file
	w.status = model.StatusLoading
	w.message = ""
	w.preview = nil
	w.updatedAt = time.Now()
	w.inflight.Add(1)
	if w.group != nil {
		w.group.Add(1)
	}
	w.mu.Unlock()

	logger.Info(ctx, "upload submitted", "filename", file.Name, "size", file.Size())

	go w.upload(context.WithoutCancel(ctx), file)
	return true
}

func (w *UploadWidget) upload(ctx context.Context, file *model.SelectedFile) {
	defer w.inflight.Done()
	if w.group != nil {
		defer w.group.Done()
	}

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	resp, err := w.uploader.Upload(ctx, file)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.updatedAt = time.Now()

	if err != nil {
		w.status = model.StatusError
		w.message = failureMessage(err)
		logger.Warn(ctx, "upload failed", "filename", file.Name, "error", err)
		return
	}

	w.status = model.StatusSuccess
	w.message = model.MessageUploaded
	w.preview = resp.Preview
	if w.preview != nil && *w.preview == "" {
		w.preview = nil
	}
	logger.Info(ctx, "upload completed", "filename", file.Name, "has_preview", w.preview != nil)
}

func failureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return model.MessageUploadFailed
}

// Wait blocks until no upload is in flight
func (w *UploadWidget) Wait() {
	w.inflight.Wait()
}

// Snapshot returns a copy of the widget state for rendering
func (w *UploadWidget) Snapshot() model.UploadSession {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := model.UploadSession{
		ID:        w.id,
		Status:    w.status,
		Message:   w.message,
		CreatedAt: w.createdAt,
		UpdatedAt: w.updatedAt,
	}
	if w.file != nil {
		s.SelectedFile = &model.FileInfo{Name: w.file.Name, Size: w.file.Size()}
	}
	if w.preview != nil {
		p := *w.preview
		s.Preview = &p
	}
	return s
}
