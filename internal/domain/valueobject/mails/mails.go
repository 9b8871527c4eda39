// Package mails holds the outgoing email value object.
package mails

type Payload struct {
	To      string
	Subject string
	Body    string
}
