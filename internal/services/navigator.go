package services

// LoginPath is the entry point users are sent to when the session ends.
const LoginPath = "/login"

// Navigator moves the user to another screen of the console.
type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }
