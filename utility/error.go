package utility

// AppError is a plain service error with a fixed message. The sentinel
// errors in the route, planner and upstream client packages are built on it
// and matched with errors.Is.
type AppError struct {
	message string
}

func (e *AppError) Error() string {
	return e.message
}

func Err(m string) error {
	return &AppError{m}
}
