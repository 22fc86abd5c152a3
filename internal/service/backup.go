package service

import "io"

type Backup interface {
	Export(w io.Writer) error
	Import(r io.Reader) error
}
