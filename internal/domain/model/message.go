package model

// Message is a templated email handed to the messaging provider.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	Tags    []string
}
