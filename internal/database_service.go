package internal

// Database is the optional log sink. Station data is never persisted; only
// service log records go through here.
type Database interface {
	WriteLogMessage(data Data) error
	ReadLog(limit int) ([]ServiceLogMessage, error)
}

type Data interface {
	DataType() string
}
