package media

import "time"

// UploadURLRequest asks for a presigned upload slot
type UploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Kind        string `json:"kind" binding:"required"`
}

// UploadURLResponse carries the presigned upload URL. The client PUTs
// the file to UploadURL, then confirms with StorageKey.
type UploadURLResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ConfirmUploadRequest confirms a finished upload
type ConfirmUploadRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

// DownloadURLResponse carries a presigned download URL
type DownloadURLResponse struct {
	StorageKey  string    `json:"storage_key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}
