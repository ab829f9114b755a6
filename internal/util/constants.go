package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeImage       = "image/"
	MimeAudio       = "audio/"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
	AllowedAudioExtensions = []string{".mp3", ".m4a", ".ogg", ".wav"}
)
