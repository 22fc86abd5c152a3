package service

import "io"

type Report interface {
	Global(w io.Writer) error
	Student(w io.Writer, studentID string) error
}
