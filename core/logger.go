package core

type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Actor is the user an upstream auth gateway attached to a request.
type Actor struct {
	ID       string
	Username string
}

func (a Actor) IsZero() bool {
	return a.ID == "" && a.Username == ""
}
